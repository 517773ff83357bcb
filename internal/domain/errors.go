package domain

import "errors"

var (
	ErrTemplateNotFound    = errors.New("template not found")
	ErrInvalidTemplate     = errors.New("invalid template definition")
	ErrUnknownStrategy     = errors.New("unknown strategy")
	ErrUnknownNormalizer   = errors.New("unknown normalizer")
	ErrStrategyConfig      = errors.New("invalid strategy configuration")
	ErrDocumentSource      = errors.New("document source error")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrObjectNotFound      = errors.New("object not found")
)
