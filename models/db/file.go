package dbmodels

type FileType string

const (
	FileTypeResume    FileType = "RESUME"
	FileTypeLicense   FileType = "LICENSE"
	FileTypeClinicDoc FileType = "CLINIC_DOC"
)

// DocumentFile is S3 object metadata; the object body lives in the bucket
// under ID as key.
type DocumentFile struct {
	BaseModel
	OwnerSub    string   `gorm:"type:varchar(64);index"`
	ClinicID    string   `gorm:"type:varchar(36);index"`
	FileType    FileType `gorm:"type:varchar(20)"`
	Name        string   `gorm:"type:varchar(255)"`
	ContentType string   `gorm:"type:varchar(100)"`
	Size        int64
}
