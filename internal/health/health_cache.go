package health

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/linanwx/chatwidget/cache"
)

func inspectCacheFile(ctx context.Context, path string) *CacheInfo {
	info := &CacheInfo{Path: path}

	stat, err := os.Stat(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			info.Error = err.Error()
		}
		return info
	}
	info.Exists = true
	info.FileSizeBytes = stat.Size()
	info.UpdatedAt = stat.ModTime().Format(time.RFC3339)

	store, err := cache.Open(path)
	if err != nil {
		info.Error = err.Error()
		return info
	}
	defer store.Close()

	st, err := store.Stats(ctx, 0)
	if err != nil {
		info.Error = err.Error()
		return info
	}
	info.Entries = st.TotalEntries
	info.Uses = st.TotalUses
	return info
}
