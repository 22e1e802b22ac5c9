package stegimg

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bodgit/stegimg/lsb"
)

const scanWorkers = 10

var errWalkCancelled = errors.New("walk cancelled")

// Found is an image containing a message
type Found struct {
	Path    string
	Message string
}

func isImage(file string) bool {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".png", ".bmp", ".gif", ".jpg", ".jpeg", ".webp":
		return true
	default:
		return false
	}
}

func (s *Stegimg) findImages(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories
			if info.Name()[0] == '.' && file != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a normal file
			if !info.Mode().IsRegular() || !isImage(file) {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errWalkCancelled
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (s *Stegimg) imageWorker(ctx context.Context, cancel context.CancelFunc, wg *sync.WaitGroup, in <-chan string, out chan<- Found) (<-chan error, error) {
	errc := make(chan error, 1)
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(errc)
		for file := range in {
			m, _, err := openImage(file)
			switch {
			case err == nil:
			case errors.Is(err, ErrImageUndecodable):
				s.logger.Printf("Skipping \"%s\": %v\n", file, err)
				continue
			default:
				errc <- err
				cancel()
				return
			}

			// Never prompt, a bad header just means no message
			msg, err := lsb.Decode(m, nil, lsb.Strict(s.options.Strict))
			if err != nil || msg == "" {
				s.logger.Printf("No message in \"%s\"\n", file)
				continue
			}

			select {
			case out <- Found{file, msg}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	var first error
	for err := range mergeErrors(errs...) {
		if err != nil && (first == nil || errors.Is(first, errWalkCancelled)) {
			first = err
		}
	}
	return first
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan walks the directory tree at path and returns every image that holds
// a message, sorted by path. Images are decoded concurrently and a header
// mismatch is never confirmed.
func (s *Stegimg) Scan(path string) ([]Found, error) {
	dir, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := s.findImages(ctx, dir)
	if err != nil {
		return nil, err
	}
	errcList = append(errcList, errc)

	results := make(chan Found)

	var wg sync.WaitGroup
	for i := 0; i < scanWorkers; i++ {
		errc, err := s.imageWorker(ctx, cancelFunc, &wg, files, results)
		if err != nil {
			return nil, err
		}
		errcList = append(errcList, errc)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var found []Found
	for f := range results {
		found = append(found, f)
	}

	if err := waitForPipeline(errcList...); err != nil {
		return nil, err
	}

	sort.Slice(found, func(i, j int) bool { return found[i].Path < found[j].Path })

	return found, nil
}
