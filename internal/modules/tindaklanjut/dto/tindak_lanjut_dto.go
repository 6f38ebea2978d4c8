package dto

type CreateTindakLanjutInput struct {
	Tanggal          string   `json:"tanggal" binding:"required,datetime=2006-01-02"`
	JenisTL          string   `json:"jenis_tl" binding:"required,max=100"`
	Keterangan       *string  `json:"keterangan"`
	FileURLs         []string `json:"file_urls" binding:"omitempty,dive,url"`
	NomorSuratOutput *string  `json:"nomor_surat_output" binding:"omitempty,max=100"`
	LinkDrive        *string  `json:"link_drive" binding:"omitempty,url"`
}

// UpdateTindakLanjutInput keeps the stored value for every nil field.
type UpdateTindakLanjutInput struct {
	Tanggal          *string   `json:"tanggal" binding:"omitempty,datetime=2006-01-02"`
	JenisTL          *string   `json:"jenis_tl" binding:"omitempty,min=1,max=100"`
	Keterangan       *string   `json:"keterangan"`
	FileURLs         *[]string `json:"file_urls" binding:"omitempty,dive,url"`
	NomorSuratOutput *string   `json:"nomor_surat_output" binding:"omitempty,max=100"`
	LinkDrive        *string   `json:"link_drive"`
}
