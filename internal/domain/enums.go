package domain

// ReportStatus is the overall verdict of a comparison report.
type ReportStatus string

const (
	ReportStatusPass ReportStatus = "pass"
	ReportStatusFail ReportStatus = "fail"
)

// TemplateFormat is the serialization format of a stored template definition.
type TemplateFormat string

const (
	TemplateFormatYAML TemplateFormat = "yaml"
	TemplateFormatJSON TemplateFormat = "json"
)

// TemplateExtensions lists the file extensions probed for a template id, in
// priority order.
var TemplateExtensions = []struct {
	Ext    string
	Format TemplateFormat
}{
	{".yaml", TemplateFormatYAML},
	{".yml", TemplateFormatYAML},
	{".json", TemplateFormatJSON},
}

// FileType identifies a document format accepted by the text decoders.
type FileType string

const (
	FileTypeTXT  FileType = "txt"
	FileTypePDF  FileType = "pdf"
	FileTypeDOCX FileType = "docx"
	FileTypeDOC  FileType = "doc"
	FileTypeODT  FileType = "odt"
	FileTypeRTF  FileType = "rtf"
	FileTypeHTML FileType = "html"
	FileTypeJPG  FileType = "jpg"
	FileTypePNG  FileType = "png"
	FileTypeTIFF FileType = "tiff"
)

// FileTypeMIME maps FileType to its MIME content type.
var FileTypeMIME = map[FileType]string{
	FileTypeTXT:  "text/plain",
	FileTypePDF:  "application/pdf",
	FileTypeDOCX: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	FileTypeDOC:  "application/msword",
	FileTypeODT:  "application/vnd.oasis.opendocument.text",
	FileTypeRTF:  "application/rtf",
	FileTypeHTML: "text/html",
	FileTypeJPG:  "image/jpeg",
	FileTypePNG:  "image/png",
	FileTypeTIFF: "image/tiff",
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"txt":  FileTypeTXT,
	"text": FileTypeTXT,
	"pdf":  FileTypePDF,
	"docx": FileTypeDOCX,
	"doc":  FileTypeDOC,
	"odt":  FileTypeODT,
	"rtf":  FileTypeRTF,
	"html": FileTypeHTML,
	"htm":  FileTypeHTML,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
	"tif":  FileTypeTIFF,
	"tiff": FileTypeTIFF,
}
