package domain

import "time"

// ArtifactName is the logical name of a derived file within a work's
// output directory. The physical filename is <stem>.<logical name>.
type ArtifactName string

// Logical artifact names produced by conversion.
const (
	// ArtifactStyle is the style-normalised markdown rendering.
	ArtifactStyle ArtifactName = "style.md"

	// ArtifactHier is the hierarchical outline markdown rendering.
	// Chunk suggestion generation depends on this artifact.
	ArtifactHier ArtifactName = "hier.md"

	// ArtifactTOCTitles lists headings taken from the document's own
	// table of contents.
	ArtifactTOCTitles ArtifactName = "toc_titles.md"

	// ArtifactTitles lists every heading inferred during conversion.
	ArtifactTitles ArtifactName = "titles.md"
)

// AllArtifactNames lists every logical artifact name in a stable order.
var AllArtifactNames = []ArtifactName{
	ArtifactStyle,
	ArtifactHier,
	ArtifactTOCTitles,
	ArtifactTitles,
}

// Artifact describes a derived file that exists for a work.
type Artifact struct {
	// WorkID links to the owning Work.
	WorkID string

	// Name is the logical artifact name.
	Name ArtifactName

	// Size is the file size in bytes.
	Size int64

	// ModTime is the last modification time.
	ModTime time.Time
}

// Filename returns the physical filename for a logical artifact name
// given the work's stem, e.g. "report" -> "report.style.md".
func (n ArtifactName) Filename(stem string) string {
	if stem == "" {
		return string(n)
	}
	return stem + "." + string(n)
}
