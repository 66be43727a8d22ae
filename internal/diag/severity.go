package diag

// Severity ranks how serious a diagnostic is. Errors abort the phase that
// reports them; warnings and infos render without failing the compile.
type Severity uint8

const (
	// SevInfo marks purely informational output.
	SevInfo Severity = iota
	// SevWarning marks a recoverable problem the compile survives.
	SevWarning
	// SevError marks a failure that stops the pipeline.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}
