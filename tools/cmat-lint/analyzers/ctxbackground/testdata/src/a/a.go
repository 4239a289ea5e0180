package a

import "context"

type archive interface {
	Lookup(ctx context.Context, key string) (string, error)
}

func bad(a archive) {
	_, _ = a.Lookup(context.Background(), "302/1/0") // want "context.Background outside main"
}

func badTODO(a archive) {
	_, _ = a.Lookup(context.TODO(), "302/1/0") // want "context.TODO outside main"
}

func good(ctx context.Context, a archive) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	_, _ = a.Lookup(ctx, "302/1/0")
}
