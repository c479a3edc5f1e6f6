package detector

import "testing"

func TestDetect(t *testing.T) {
	d := New()

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "english",
			text: "Follow these steps to install the application on your device and sign in with your account.",
			want: "en",
		},
		{
			name: "spanish",
			text: "Siga estos pasos para instalar la aplicación en su dispositivo y acceder con su cuenta.",
			want: "es",
		},
		{
			name: "german",
			text: "Befolgen Sie diese Schritte, um die Anwendung auf Ihrem Gerät zu installieren und sich anzumelden.",
			want: "de",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := d.Detect(tt.text)
			if !ok {
				t.Fatal("Detect() ok = false, want true")
			}
			if got != tt.want {
				t.Errorf("Detect() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetect_EmptyText(t *testing.T) {
	d := New()
	if _, ok := d.Detect(""); ok {
		t.Error("Detect(\"\") ok = true, want false")
	}
}
