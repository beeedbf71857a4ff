package utils

import "testing"

func TestFileExtension(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"notes.txt", "txt"},
		{"Policy.PDF", "pdf"},
		{"archive.tar.gz", "gz"},
		{"noextension", ""},
		{"trailingdot.", ""},
	}

	for _, tt := range tests {
		if got := FileExtension(tt.filename); got != tt.want {
			t.Errorf("FileExtension(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}

func TestAllowedFile(t *testing.T) {
	allowed := []string{"a.txt", "b.pdf", "C.TXT", "d.Pdf"}
	for _, name := range allowed {
		if !AllowedFile(name) {
			t.Errorf("Expected %s to be allowed", name)
		}
	}

	rejected := []string{"a.docx", "b.exe", "c", "d.csv", "e.txt.zip"}
	for _, name := range rejected {
		if AllowedFile(name) {
			t.Errorf("Expected %s to be rejected", name)
		}
	}
}

func TestExtractText_Txt(t *testing.T) {
	text, err := ExtractText([]byte("linha um\nlinha dois"), "txt")
	if err != nil {
		t.Fatalf("ExtractText failed: %v", err)
	}
	if text != "linha um\nlinha dois" {
		t.Errorf("Unexpected text: %q", text)
	}
}

func TestExtractText_TxtInvalidUTF8(t *testing.T) {
	// Invalid byte sequences are dropped, not replaced
	text, err := ExtractText([]byte{'o', 'k', 0xff, 0xfe, '!'}, "txt")
	if err != nil {
		t.Fatalf("ExtractText failed: %v", err)
	}
	if text != "ok!" {
		t.Errorf("Expected invalid bytes dropped, got %q", text)
	}
}

func TestExtractText_UnsupportedExtension(t *testing.T) {
	text, err := ExtractText([]byte("anything"), "docx")
	if err != nil {
		t.Fatalf("Unsupported extensions must not error, got %v", err)
	}
	if text != "" {
		t.Errorf("Expected empty text for unsupported extension, got %q", text)
	}
}

func TestExtractText_CorruptPDF(t *testing.T) {
	if _, err := ExtractText([]byte("not a pdf"), "pdf"); err == nil {
		t.Error("Expected an error for corrupt PDF data")
	}
}
