package forensics

import (
	"context"
	"fmt"
	"sync"

	"github.com/25smoking/bamparse/internal/registry"
)

// ExecutableRecord is one program execution recorded by BAM.
// Fields are declared in JSON key order so encoding yields sorted keys.
type ExecutableRecord struct {
	Date string `json:"date"`
	Path string `json:"path"`
}

// BamEntry groups the executables recorded under one SID subkey.
type BamEntry struct {
	Executable []ExecutableRecord `json:"executable"`
	SID        string             `json:"sid"`
}

// BamResult holds one entry per subkey in enumeration order.
type BamResult []BamEntry

// Count returns the number of executable records across all entries.
func (r BamResult) Count() int {
	n := 0
	for _, e := range r {
		n += len(e.Executable)
	}
	return n
}

// DecodeError records a binary value that could not be turned into a
// record. It is never fatal: the value is skipped and extraction goes on.
type DecodeError struct {
	SID  string
	Path string
	Size int
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s\\%s (%d bytes): %v", e.SID, e.Path, e.Size, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Extractor turns registry subkeys into BAM entries.
type Extractor struct {
	decoder *Decoder
	workers int
}

// NewExtractor returns an Extractor; workers <= 1 processes subkeys sequentially.
func NewExtractor(dec *Decoder, workers int) *Extractor {
	if dec == nil {
		dec = NewDecoder(nil)
	}
	if workers < 1 {
		workers = 1
	}
	return &Extractor{decoder: dec, workers: workers}
}

// Entry builds the entry for one subkey. Only values of kind Binary are
// considered; everything else is skipped silently. Binary values that fail
// to decode are skipped and reported in the returned slice.
func (x *Extractor) Entry(sid string, values []registry.Value) (BamEntry, []*DecodeError) {
	entry := BamEntry{
		SID:        sid,
		Executable: make([]ExecutableRecord, 0, len(values)),
	}
	var skipped []*DecodeError

	for _, v := range values {
		if v.Kind != registry.Binary {
			continue
		}
		date, err := x.decoder.Decode(v.Data)
		if err != nil {
			skipped = append(skipped, &DecodeError{SID: sid, Path: v.Name, Size: len(v.Data), Err: err})
			continue
		}
		entry.Executable = append(entry.Executable, ExecutableRecord{Path: v.Name, Date: date})
	}
	return entry, skipped
}

// All extracts every subkey. Output order always matches subkey order,
// whatever the worker count.
func (x *Extractor) All(ctx context.Context, subkeys []registry.Subkey) (BamResult, []*DecodeError, error) {
	entries := make(BamResult, len(subkeys))
	skipped := make([][]*DecodeError, len(subkeys))

	if x.workers == 1 {
		for i, sk := range subkeys {
			if err := ctx.Err(); err != nil {
				return nil, nil, err
			}
			entries[i], skipped[i] = x.Entry(sk.Name, sk.Values)
		}
	} else {
		var wg sync.WaitGroup
		sem := make(chan struct{}, x.workers)
		for i, sk := range subkeys {
			if ctx.Err() != nil {
				break
			}
			sem <- struct{}{}
			wg.Add(1)
			go func(i int, sk registry.Subkey) {
				defer wg.Done()
				defer func() { <-sem }()
				entries[i], skipped[i] = x.Entry(sk.Name, sk.Values)
			}(i, sk)
		}
		wg.Wait()
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
	}

	var all []*DecodeError
	for _, s := range skipped {
		all = append(all, s...)
	}
	return entries, all, nil
}

// ExtractAll is shorthand for NewExtractor(dec, workers).All(ctx, subkeys).
func ExtractAll(ctx context.Context, subkeys []registry.Subkey, dec *Decoder, workers int) (BamResult, []*DecodeError, error) {
	return NewExtractor(dec, workers).All(ctx, subkeys)
}
