package types

// DatasetSource tells where a project's production series came from.
type DatasetSource int

const (
	DatasetExampleRooftop DatasetSource = iota // bundled rooftop example
	DatasetExampleGroundMount                  // bundled ground-mount example
	DatasetUploaded                            // user-supplied file
)

func (s DatasetSource) String() string {
	switch s {
	case DatasetExampleRooftop:
		return "example-rooftop"
	case DatasetExampleGroundMount:
		return "example-ground-mount"
	case DatasetUploaded:
		return "uploaded"
	default:
		return "unknown"
	}
}

// Project is a named production dataset, either bundled or uploaded.
type Project struct {
	Name   string
	Source DatasetSource
	Series []ProductionPoint
}
