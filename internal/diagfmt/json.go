package diagfmt

import (
	"encoding/json"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"copper/internal/source"
)

// LocationJSON is the position of an offense. Lines and columns are 1-based;
// last_column is inclusive as in RuboCop's report.
type LocationJSON struct {
	StartLine   uint32 `json:"start_line" msgpack:"start_line"`
	StartColumn uint32 `json:"start_column" msgpack:"start_column"`
	LastLine    uint32 `json:"last_line" msgpack:"last_line"`
	LastColumn  uint32 `json:"last_column" msgpack:"last_column"`
	Length      uint32 `json:"length" msgpack:"length"`
	StartByte   uint32 `json:"start_byte" msgpack:"start_byte"`
	EndByte     uint32 `json:"end_byte" msgpack:"end_byte"`
}

// OffenseJSON is one offense.
type OffenseJSON struct {
	Severity    string       `json:"severity" msgpack:"severity"`
	Message     string       `json:"message" msgpack:"message"`
	CopName     string       `json:"cop_name" msgpack:"cop_name"`
	Corrected   bool         `json:"corrected" msgpack:"corrected"`
	Correctable bool         `json:"correctable" msgpack:"correctable"`
	Location    LocationJSON `json:"location" msgpack:"location"`
}

// FileJSON lists the offenses of one file.
type FileJSON struct {
	Path     string        `json:"path" msgpack:"path"`
	Offenses []OffenseJSON `json:"offenses" msgpack:"offenses"`
}

// SummaryJSON totals a run.
type SummaryJSON struct {
	OffenseCount       int `json:"offense_count" msgpack:"offense_count"`
	CorrectedCount     int `json:"corrected_count" msgpack:"corrected_count"`
	TargetFileCount    int `json:"target_file_count" msgpack:"target_file_count"`
	InspectedFileCount int `json:"inspected_file_count" msgpack:"inspected_file_count"`
}

// MetadataJSON identifies the producer.
type MetadataJSON struct {
	Tool    string `json:"tool" msgpack:"tool"`
	Version string `json:"version,omitempty" msgpack:"version,omitempty"`
}

// ReportJSON is the root document of the json and msgpack formats.
type ReportJSON struct {
	Metadata MetadataJSON `json:"metadata" msgpack:"metadata"`
	Files    []FileJSON   `json:"files" msgpack:"files"`
	Summary  SummaryJSON  `json:"summary" msgpack:"summary"`
}

func makeLocation(f *source.File, span source.Span) LocationJSON {
	loc := LocationJSON{StartByte: span.Start, EndByte: span.End, Length: span.Len()}
	if f == nil {
		return loc
	}
	start, end := f.Resolve(span)
	loc.StartLine, loc.StartColumn = start.Line, start.Col
	loc.LastLine, loc.LastColumn = end.Line, end.Col
	// последняя колонка включительно; пустой span указывает на start
	if span.Len() > 0 && loc.LastColumn > 1 {
		loc.LastColumn--
	}
	return loc
}

// BuildReport формирует документ без сериализации. Max ограничивает число
// оффенсов в документе, summary всегда считает все.
func BuildReport(files []FileOffenses, fs *source.FileSet, opts JSONOpts) ReportJSON {
	doc := ReportJSON{
		Metadata: MetadataJSON{Tool: "copper", Version: opts.Version},
		Files:    make([]FileJSON, 0, len(files)),
	}
	budget := opts.Max
	for _, fo := range files {
		fj := FileJSON{
			Path:     formatPath(fo.File, fo.Path, fs, opts.PathMode),
			Offenses: make([]OffenseJSON, 0, len(fo.Offenses)),
		}
		for _, o := range fo.Offenses {
			doc.Summary.OffenseCount++
			if o.Corrected {
				doc.Summary.CorrectedCount++
			}
			if opts.Max > 0 {
				if budget == 0 {
					continue
				}
				budget--
			}
			fj.Offenses = append(fj.Offenses, OffenseJSON{
				Severity:    o.Severity.String(),
				Message:     o.Message,
				CopName:     o.Cop,
				Corrected:   o.Corrected,
				Correctable: o.Correctable,
				Location:    makeLocation(fo.File, o.Span),
			})
		}
		doc.Files = append(doc.Files, fj)
		doc.Summary.TargetFileCount++
		if fo.File != nil {
			doc.Summary.InspectedFileCount++
		}
	}
	return doc
}

// JSON пишет отчёт в формате JSON.
func JSON(w io.Writer, files []FileOffenses, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	if opts.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(BuildReport(files, fs, opts))
}

// Msgpack пишет тот же документ в msgpack.
func Msgpack(w io.Writer, files []FileOffenses, fs *source.FileSet, opts JSONOpts) error {
	return msgpack.NewEncoder(w).Encode(BuildReport(files, fs, opts))
}

