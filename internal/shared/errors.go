package shared

type Error string

// Implement the error interface
func (e Error) Error() string { return string(e) }

//------------
// Definitions
//------------

// repository errors
const (
	ErrNotFound     = Error("record not found")
	ErrDuplicateKey = Error("duplicate key")
	ErrUnknownTable = Error("unknown table")
)

// export errors
const (
	ErrRegionNotFound = Error("render region not found")
	ErrNoReports      = Error("no reports to export")
	ErrNoPages        = Error("document has no pages")
)

// backup errors
const (
	ErrMalformedBackup = Error("malformed backup file")
)

// cli errors
const (
	ErrorCreateFile      = Error("could not create the file")
	ErrorConfirmAborted  = Error("confirmation aborted")
)
