package domain

import "time"

// Dataset é uma planilha enviada pelo usuário e mantida em memória
type Dataset struct {
	ID             string
	FileName       string
	Sheet          string
	Fingerprint    string
	Table          *Table
	UploadedAt     time.Time
	LastAccessedAt time.Time
}

type DatasetInfo struct {
	ID             string    `json:"id"`
	FileName       string    `json:"file_name"`
	Sheet          string    `json:"sheet"`
	Columns        []string  `json:"columns"`
	Rows           int       `json:"rows"`
	UploadedAt     time.Time `json:"uploaded_at"`
	LastAccessedAt time.Time `json:"last_accessed_at"`
}

func (d *Dataset) Info() *DatasetInfo {
	info := &DatasetInfo{
		ID:             d.ID,
		FileName:       d.FileName,
		Sheet:          d.Sheet,
		UploadedAt:     d.UploadedAt,
		LastAccessedAt: d.LastAccessedAt,
	}

	if d.Table != nil {
		info.Columns = d.Table.Columns
		info.Rows = d.Table.Len()
	}

	return info
}
