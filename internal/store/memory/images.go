package memory

import (
	"context"

	"backoffice/internal/domain/image"
	"backoffice/internal/store/repositories"
)

type fileRec = image.File

type imageRepo struct {
	store  *Store
	images map[string]fileRec
	thumbs map[string]fileRec
}

func (r *imageRepo) SaveImage(ctx context.Context, f *image.File) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.images[f.ID] = *f
	return nil
}

func (r *imageRepo) FindImage(ctx context.Context, id string) (*image.File, error) {
	return r.find(r.images, "image", id)
}

func (r *imageRepo) DeleteImage(ctx context.Context, id string) error {
	return r.delete(r.images, "image", id)
}

func (r *imageRepo) SaveThumb(ctx context.Context, f *image.File) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.thumbs[f.ID] = *f
	return nil
}

func (r *imageRepo) FindThumb(ctx context.Context, id string) (*image.File, error) {
	return r.find(r.thumbs, "thumb", id)
}

func (r *imageRepo) DeleteThumb(ctx context.Context, id string) error {
	return r.delete(r.thumbs, "thumb", id)
}

func (r *imageRepo) find(m map[string]fileRec, entity, id string) (*image.File, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	f, ok := m[id]
	if !ok {
		return nil, &repositories.NotFoundError{Entity: entity, Key: id}
	}
	cp := f
	return &cp, nil
}

func (r *imageRepo) delete(m map[string]fileRec, entity, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := m[id]; !ok {
		return &repositories.NotFoundError{Entity: entity, Key: id}
	}
	delete(m, id)
	return nil
}
