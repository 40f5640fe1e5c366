package infrastructure

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileWriter_Write(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "report.json")
	content := []byte(`{"errors":[]}`)

	writer := NewFileWriter()
	if err := writer.Write(testFile, content); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	data, err := os.ReadFile(testFile)
	if err != nil {
		t.Fatalf("Failed to read written file: %v", err)
	}
	if string(data) != string(content) {
		t.Errorf("Write() content = %v, want %v", string(data), string(content))
	}
}

func TestFileWriter_Write_DeleteFile(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "report.json")

	writer := NewFileWriter()
	if err := writer.Write(testFile, []byte("stale")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := writer.Write(testFile, nil); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if _, err := os.Stat(testFile); !os.IsNotExist(err) {
		t.Error("Write() with nil should delete file")
	}

	// повторное удаление не является ошибкой
	if err := writer.Write(testFile, nil); err != nil {
		t.Errorf("Write() error = %v", err)
	}
}

func TestFileWriter_Write_CreateDirectory(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "reports", "nested", "report.yaml")

	writer := NewFileWriter()
	if err := writer.Write(testFile, []byte("errors: []\n")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if _, err := os.Stat(testFile); os.IsNotExist(err) {
		t.Error("Write() should create directory if it doesn't exist")
	}
}
