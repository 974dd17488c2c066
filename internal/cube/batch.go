package cube

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/ironsheep/cubeface/internal/imaging"
)

// ErrEmptyInput is returned by Runner.Run when no image paths are given.
var ErrEmptyInput = errors.New("no image paths provided")

// EmptyInputMessage is the error text reported to users for an empty batch.
const EmptyInputMessage = "No image paths provided."

// ErrorKind classifies a per-image failure.
type ErrorKind string

const (
	KindImageLoad       ErrorKind = "image_load"
	KindDegenerateImage ErrorKind = "degenerate_image"
	KindEmptyRegion     ErrorKind = "empty_region"
	KindInternal        ErrorKind = "internal"
)

// ResultError describes why one image produced no face.
type ResultError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"error"`
}

// Result is the outcome for one input image: exactly one of Face or Err is set.
type Result struct {
	Face *FaceGrid
	Err  *ResultError
}

// MarshalJSON encodes a face as a 3x3 array of color names and a failure as
// {"error": message}.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Err != nil {
		return json.Marshal(map[string]string{"error": r.Err.Message})
	}
	if r.Face == nil {
		return nil, fmt.Errorf("result has neither face nor error")
	}
	return json.Marshal(r.Face)
}

// Results holds batch outcomes in input order.
type Results []Result

// Key returns the label used for the i-th (0-based) result, e.g. "Image 1".
func Key(i int) string {
	return fmt.Sprintf("Image %d", i+1)
}

// MarshalJSON encodes the results as a JSON object keyed "Image 1",
// "Image 2", ... with keys kept in input order.
func (rs Results) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, r := range rs {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(Key(i))
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", Key(i), err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// EmptyInputJSON is the document emitted instead of results when no images
// are supplied.
func EmptyInputJSON() ([]byte, error) {
	return json.Marshal(map[string]string{"error": EmptyInputMessage})
}

// Runner analyzes a list of images and collects one Result per image.
type Runner struct {
	detector *Detector
	workers  int
	logger   hclog.Logger
}

// NewRunner creates a runner that uses detector for every image.
func NewRunner(detector *Detector, opts ...Option) *Runner {
	o := buildOptions(opts)
	return &Runner{
		detector: detector,
		workers:  o.workers,
		logger:   o.logger,
	}
}

// Run analyzes every path and returns results in the same order as paths.
//
// A failing image is recorded as an error result and never stops the batch.
// The only error Run itself returns is ErrEmptyInput.
func (r *Runner) Run(paths []string) (Results, error) {
	if len(paths) == 0 {
		return nil, ErrEmptyInput
	}

	results := make(Results, len(paths))

	if r.workers == 1 || len(paths) == 1 {
		for i, path := range paths {
			results[i] = r.runOne(i, path)
		}
		return results, nil
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < r.workers && w < len(paths); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = r.runOne(i, paths[i])
			}
		}()
	}
	for i := range paths {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results, nil
}

func (r *Runner) runOne(i int, path string) (res Result) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("panic while analyzing image", "image", Key(i), "path", path, "panic", p)
			res = Result{Err: &ResultError{
				Kind:    KindInternal,
				Message: fmt.Sprintf("An error occurred: %v", p),
			}}
		}
	}()

	face, err := r.detector.DetectFace(path)
	if err != nil {
		rerr := toResultError(err)
		r.logger.Warn("image analysis failed", "image", Key(i), "path", path, "kind", rerr.Kind, "error", err)
		return Result{Err: rerr}
	}

	r.logger.Debug("image analyzed", "image", Key(i), "path", path, "face", face.Rows())
	return Result{Face: &face}
}

func toResultError(err error) *ResultError {
	var loadErr *imaging.LoadError
	if errors.As(err, &loadErr) {
		return &ResultError{
			Kind:    KindImageLoad,
			Message: fmt.Sprintf("Error opening image file: %s. Error: %v", loadErr.Path, loadErr.Err),
		}
	}

	kind := KindInternal
	switch {
	case errors.Is(err, imaging.ErrDegenerateImage):
		kind = KindDegenerateImage
	case errors.Is(err, imaging.ErrEmptyRegion):
		kind = KindEmptyRegion
	}

	return &ResultError{Kind: kind, Message: fmt.Sprintf("An error occurred: %v", err)}
}
