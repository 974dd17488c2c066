package cube

import (
	"fmt"
	"image"

	"github.com/hashicorp/go-hclog"

	"github.com/ironsheep/cubeface/internal/imaging"
)

// Detector turns a photograph of one cube face into a FaceGrid.
//
// A Detector holds only read-only settings and is safe for concurrent use.
type Detector struct {
	settings   Settings
	classifier *Classifier
	logger     hclog.Logger
}

// Option configures a Detector or Runner.
type Option func(*options)

type options struct {
	logger  hclog.Logger
	workers int
}

// WithLogger sets the logger. The default discards all output.
func WithLogger(logger hclog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithWorkers sets how many images a Runner analyzes at once. Values below 1
// mean sequential processing.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: hclog.NewNullLogger(), workers: 1}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 1 {
		o.workers = 1
	}
	return o
}

// NewDetector creates a detector using the given settings.
func NewDetector(settings Settings, opts ...Option) *Detector {
	o := buildOptions(opts)
	return &Detector{
		settings:   settings,
		classifier: NewClassifier(settings.Palette, settings.HueWeight),
		logger:     o.logger,
	}
}

// Classifier returns the classifier the detector uses for each cell.
func (d *Detector) Classifier() *Classifier {
	return d.classifier
}

// Settings returns a copy of the detector's settings.
func (d *Detector) Settings() Settings {
	return d.settings
}

// DetectFace loads the image at path and classifies its nine cells.
//
// # Errors
//
//   - *imaging.LoadError if the file cannot be opened or decoded
//   - imaging.ErrDegenerateImage if the image is smaller than 3x3 pixels
//   - imaging.ErrEmptyRegion if a cell has no pixels
func (d *Detector) DetectFace(path string) (FaceGrid, error) {
	img, err := imaging.Load(path)
	if err != nil {
		return FaceGrid{}, err
	}

	d.logger.Debug("loaded image", "path", path,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())

	return d.DetectImage(img)
}

// DetectImage classifies the nine cells of an already decoded image.
//
// The image is flattened to opaque RGB and enhanced before partitioning. No
// partial grid is returned: the first failing cell aborts the face.
func (d *Detector) DetectImage(img image.Image) (FaceGrid, error) {
	enhanced := imaging.Enhance(imaging.ToRGB(img), d.settings.Enhancement)

	cells, err := imaging.Partition(enhanced.Bounds())
	if err != nil {
		return FaceGrid{}, err
	}

	var face FaceGrid
	for i, row := range cells {
		for j, region := range row {
			dominant, err := imaging.DominantColor(enhanced, region)
			if err != nil {
				return FaceGrid{}, fmt.Errorf("cell (%d,%d): %w", i, j, err)
			}
			face[i][j] = d.classifier.Classify(dominant)

			d.logger.Debug("classified cell", "row", i, "col", j,
				"dominant", dominant.Hex(), "label", face[i][j])
		}
	}

	return face, nil
}
