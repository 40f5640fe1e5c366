package domain

import "testing"

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name     string
		filePath string
		want     FileFormat
	}{
		{
			name:     "YAML file with .yaml extension",
			filePath: "greet_api.yaml",
			want:     FormatYAML,
		},
		{
			name:     "YAML file with .yml extension",
			filePath: "greet_api.yml",
			want:     FormatYAML,
		},
		{
			name:     "JSON file",
			filePath: "greet_api.json",
			want:     FormatJSON,
		},
		{
			name:     "Upper case extension",
			filePath: "GREET_API.JSON",
			want:     FormatJSON,
		},
		{
			name:     "File without extension",
			filePath: "greet_api",
			want:     FormatYAML, // default
		},
		{
			name:     "URL with query string",
			filePath: "https://example.com/specs/greet_api.json?rev=2",
			want:     FormatJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFormat(tt.filePath); got != tt.want {
				t.Errorf("DetectFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    FileFormat
		wantErr bool
	}{
		{in: "json", want: FormatJSON},
		{in: "YAML", want: FormatYAML},
		{in: "yml", want: FormatYAML},
		{in: "toml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}
