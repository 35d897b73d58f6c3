package store

import (
	"context"
	"errors"
	"strconv"

	"github.com/goliatone/go-portfolio/pkg/model"
)

// ErrSuperseded is reported by a load that was replaced by a newer load for
// the same target before it could apply its result.
var ErrSuperseded = errors.New("store: image load superseded")

// ImageTarget identifies the document field an image load writes to.
type ImageTarget struct {
	projectID int64
	project   bool
}

// ProfileImage targets the document's profile image.
func ProfileImage() ImageTarget {
	return ImageTarget{}
}

// ProjectImage targets the image of the project with the given id.
func ProjectImage(id int64) ImageTarget {
	return ImageTarget{projectID: id, project: true}
}

// Key returns the identifier loads are serialized on.
func (t ImageTarget) Key() string {
	if !t.project {
		return "profile"
	}
	return "project:" + strconv.FormatInt(t.projectID, 10)
}

// ImageLoad is an in-flight image conversion. It completes exactly once.
type ImageLoad struct {
	target ImageTarget
	seq    uint64
	cancel context.CancelFunc
	done   chan struct{}
	uri    string
	err    error
}

// Target reports the field the load writes to.
func (l *ImageLoad) Target() ImageTarget {
	return l.target
}

// Done is closed once the load has completed.
func (l *ImageLoad) Done() <-chan struct{} {
	return l.done
}

// Cancel aborts the load. A cancelled load leaves the field unchanged.
func (l *ImageLoad) Cancel() {
	if l.cancel != nil {
		l.cancel()
	}
}

// Wait blocks until the load completes or ctx is done. On success it returns
// the data URI written to the document.
func (l *ImageLoad) Wait(ctx context.Context) (string, error) {
	select {
	case <-l.done:
		return l.uri, l.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func failedLoad(target ImageTarget, err error) *ImageLoad {
	l := &ImageLoad{target: target, done: make(chan struct{}), err: err}
	close(l.done)
	return l
}

// LoadImage converts data into a data URI on a goroutine and writes it to the
// target field once done. A newer load for the same target cancels this one;
// failures leave the field unchanged and are reported through Wait.
func (s *Store) LoadImage(ctx context.Context, target ImageTarget, data []byte) *ImageLoad {
	if ctx == nil {
		ctx = context.Background()
	}

	s.mu.Lock()
	if target.project && s.doc.ProjectIndex(target.projectID) < 0 {
		s.mu.Unlock()
		return failedLoad(target, ErrProjectNotFound)
	}

	key := target.Key()
	s.cancelLoadLocked(key)
	s.loadSeq++
	loadCtx, cancel := context.WithCancel(ctx)
	load := &ImageLoad{
		target: target,
		seq:    s.loadSeq,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	s.loads[key] = load
	s.mu.Unlock()

	go s.runLoad(loadCtx, load, data)
	return load
}

func (s *Store) runLoad(ctx context.Context, load *ImageLoad, data []byte) {
	defer close(load.done)
	defer load.cancel()

	uri, err := s.encoder.Encode(ctx, data)
	key := load.target.Key()

	s.mu.Lock()
	current, tracked := s.loads[key]
	if !tracked || current != load {
		s.mu.Unlock()
		load.err = ErrSuperseded
		return
	}
	delete(s.loads, key)

	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		s.mu.Unlock()
		load.err = err
		return
	}

	if err := s.applyImageLocked(load.target, uri); err != nil {
		s.mu.Unlock()
		load.err = err
		return
	}
	notify := s.commitLocked()
	s.mu.Unlock()

	notify()
	load.uri = uri
}

func (s *Store) applyImageLocked(target ImageTarget, uri string) error {
	if !target.project {
		return s.doc.Set(model.FieldProfileImage, uri)
	}
	idx := s.doc.ProjectIndex(target.projectID)
	if idx < 0 {
		return ErrProjectNotFound
	}
	return s.doc.Projects[idx].Set(model.ProjectImage, uri)
}

// cancelLoadLocked cancels and forgets the in-flight load for key.
func (s *Store) cancelLoadLocked(key string) {
	if load, ok := s.loads[key]; ok {
		load.cancel()
		delete(s.loads, key)
	}
}
