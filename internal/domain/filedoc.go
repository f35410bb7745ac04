package domain

import "encoding/base64"

// FileDocument is an embedded file sub-document stored inline inside its
// owning entity (user document, project document, receipt).
type FileDocument struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Data        string `json:"data"` // base64
}

// NewFileDocument encodes raw bytes into a stored sub-document.
func NewFileDocument(filename, contentType string, raw []byte) FileDocument {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return FileDocument{
		Filename:    filename,
		ContentType: contentType,
		Data:        base64.StdEncoding.EncodeToString(raw),
	}
}

// Bytes decodes the stored payload back into raw bytes.
func (d FileDocument) Bytes() ([]byte, error) {
	return base64.StdEncoding.DecodeString(d.Data)
}
