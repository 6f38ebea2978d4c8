package dto

type RegisterDocumentInput struct {
	FileURL      string `json:"file_url" binding:"required,url"`
	FileName     string `json:"file_name" binding:"required,min=1,max=255"`
	FileCategory string `json:"file_category" binding:"omitempty,max=50"`
}

type UploadResponse struct {
	URL string `json:"url"`
}

// Attachment is one entry of the merged attachment list of a complaint.
type Attachment struct {
	ID       string `json:"id"`
	RawID    string `json:"raw_id,omitempty"`
	URL      string `json:"url"`
	FileName string `json:"file_name"`
	Source   string `json:"source"`
	Meta     string `json:"meta"`
}
