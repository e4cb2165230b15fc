package sc2

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"
)

// DecodeFile opens and decodes the file at path.
func DecodeFile(path string, opts ...Option) (*City, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	city, err := Decode(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return city, nil
}

// DecodeFiles decodes paths with at most limit files in flight (limit <= 0
// means no limit). Results are in the order of paths. The first failure
// cancels the files not yet started and is returned.
//
// opts are shared by all files, so a BuildingPlacer passed here must be safe
// for concurrent use.
func DecodeFiles(ctx context.Context, paths []string, limit int, opts ...Option) ([]*City, error) {
	cities := make([]*City, len(paths))
	group, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		group.SetLimit(limit)
	}
	for i, path := range paths {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			city, err := DecodeFile(path, opts...)
			if err != nil {
				return err
			}
			cities[i] = city
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return cities, nil
}
