package redcode

// Metadata holds the optional descriptive fields a warrior file may set via
// ";name", ";author", ";date", ";version", and ";strategy" comments. Name,
// author, date and version may each be set at most once; a second occurrence
// is an error. Repeated strategy comments are joined with newlines.
type Metadata struct {
	Name     string
	Author   string
	Date     string
	Version  string
	Strategy string

	hasName, hasAuthor, hasDate, hasVersion, hasStrategy bool
}

func (m *Metadata) apply(line MetadataLine) error {
	switch line.Key {
	case MetaName:
		if m.hasName {
			return &EvaluateError{Kind: ErrDuplicateNameDefinition}
		}
		m.Name = line.Value
		m.hasName = true
	case MetaAuthor:
		if m.hasAuthor {
			return &EvaluateError{Kind: ErrDuplicateAuthorDefinition}
		}
		m.Author = line.Value
		m.hasAuthor = true
	case MetaDate:
		if m.hasDate {
			return &EvaluateError{Kind: ErrDuplicateDateDefinition}
		}
		m.Date = line.Value
		m.hasDate = true
	case MetaVersion:
		if m.hasVersion {
			return &EvaluateError{Kind: ErrDuplicateVersionDefinition}
		}
		m.Version = line.Value
		m.hasVersion = true
	case MetaStrategy:
		// Strategy is descriptive only and may repeat; later comments
		// accumulate rather than overwrite.
		if m.hasStrategy {
			m.Strategy += "\n" + line.Value
		} else {
			m.Strategy = line.Value
			m.hasStrategy = true
		}
	}
	return nil
}

// collectMetadata folds every MetadataLine among lines into a Metadata
// record, in source order.
func collectMetadata(lines []Line) (Metadata, error) {
	var m Metadata
	for _, l := range lines {
		if ml, ok := l.(MetadataLine); ok {
			if err := m.apply(ml); err != nil {
				return Metadata{}, err
			}
		}
	}
	return m, nil
}
