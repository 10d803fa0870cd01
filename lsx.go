package lsx

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jacoelho/lsx/pkg/lsxstream"
)

// Region is a named top-level section and the nodes directly inside it.
type Region struct {
	ID    string
	Nodes []*Node
}

// Decode builds the top-level nodes of every region in stream.
func (b *Builder) Decode(ctx context.Context, stream ElementStream) ([]Region, error) {
	if stream == nil {
		return nil, errNilStream
	}
	var regions []Region
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ok, err := stream.Next()
		if err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		if !ok {
			return regions, nil
		}
		if stream.Name() != regionTag {
			continue
		}
		id, _ := stream.Attr(idAttr)
		el, err := stream.Materialize()
		if err != nil {
			return nil, fmt.Errorf("decode region %s: %w", id, err)
		}
		region := Region{ID: id}
		for _, nodeEl := range el.SelectElements(nodeTag) {
			n, err := b.Build(nodeEl)
			if err != nil {
				return nil, fmt.Errorf("decode region %s: %w", id, err)
			}
			region.Nodes = append(region.Nodes, n)
		}
		regions = append(regions, region)
	}
}

// DecodeReader decodes every region of the document read from r.
func DecodeReader(ctx context.Context, r io.Reader, opts ...lsxstream.Option) ([]Region, error) {
	stream, err := lsxstream.NewReader(r, opts...)
	if err != nil {
		return nil, err
	}
	var b Builder
	return b.Decode(ctx, stream)
}

// DecodeFile decodes every region of the document at path.
func DecodeFile(ctx context.Context, path string, opts ...lsxstream.Option) (regions []Region, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open lsx file %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close lsx file %s: %w", path, closeErr)
		}
	}()
	return DecodeReader(ctx, f, opts...)
}
