package ferox

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sirupsen/logrus"
)

// BatchOperation selects which core operation the batch driver applies to
// every selected file.
type BatchOperation uint8

const (
	BatchEncrypt BatchOperation = iota
	BatchDecrypt
)

// BatchRequest carries the inputs to RunBatch (spec §4.7).
type BatchRequest struct {
	Root      string
	Recursive bool
	Includes  []string
	Excludes  []string
	Operation BatchOperation

	// Shared crypto parameters, forwarded to every Encrypt/Decrypt call.
	Password       []byte
	Level          SecurityLevel
	Keyfile        string
	ForceOverwrite bool

	// Workers bounds how many files are processed concurrently. Each
	// worker gets its own InterruptGuard, since a single file is never
	// split across workers (spec §5). Workers <= 0 defaults to 1
	// (sequential), matching the spec's "MAY be parallel, not mandated".
	Workers int

	// DryRun reports what would be selected and processed without
	// touching disk: no file is opened for writing.
	DryRun bool

	Progress ProgressSink

	// NewGuard constructs the InterruptGuard each worker goroutine holds
	// for its lifetime. Defaults to NewInterruptGuard when nil, which
	// produces a guard no external signal handler knows about. The CLI
	// passes internal/guard.Manager.New here so a batch's in-flight
	// output is unlinked on SIGINT/SIGTERM the same way a single-file
	// encrypt/decrypt is (spec §4.6 extended to batch workers).
	NewGuard func() *InterruptGuard

	// ReleaseGuard is called once a worker has drained its job channel
	// and its guard is no longer needed. Optional.
	ReleaseGuard func(*InterruptGuard)
}

// BatchFailure records why one file in a batch did not succeed.
type BatchFailure struct {
	Path   string
	Reason string
}

// BatchReport is the aggregate outcome of a batch run (spec §4.7).
type BatchReport struct {
	Processed int
	Succeeded int
	Failed    int
	Skipped   int
	Failures  []BatchFailure

	// BytesProcessed sums the plaintext bytes handled across every
	// successfully processed file.
	BytesProcessed int64

	// Duration is the wall-clock time RunBatch spent walking and
	// processing files, grounded in the corpus's EncryptionStats-style
	// batch summaries.
	Duration time.Duration
}

func (r *BatchReport) recordSuccess(bytes int64) {
	r.Processed++
	r.Succeeded++
	r.BytesProcessed += bytes
}

func (r *BatchReport) recordFailure(path string, reason string) {
	r.Processed++
	r.Failed++
	r.Failures = append(r.Failures, BatchFailure{Path: path, Reason: reason})
}

func (r *BatchReport) recordSkip() {
	r.Skipped++
}

// BatchEncryptRun walks root and encrypts every selected file.
func BatchEncryptRun(req BatchRequest) (*BatchReport, error) {
	req.Operation = BatchEncrypt
	return RunBatch(req)
}

// BatchDecryptRun walks root and decrypts every selected file.
func BatchDecryptRun(req BatchRequest) (*BatchReport, error) {
	req.Operation = BatchDecrypt
	return RunBatch(req)
}

// RunBatch enumerates files under req.Root, applies the include/exclude
// glob filter and the already-encrypted/not-encrypted rule, then invokes
// Encrypt or Decrypt on every selected file. A single file's failure never
// aborts the batch (spec §4.7); only an enumeration-level error is fatal.
func RunBatch(req BatchRequest) (*BatchReport, error) {
	start := time.Now()
	files, err := enumerate(req.Root, req.Recursive)
	if err != nil {
		return nil, errIO(req.Root, "walk", err)
	}

	report := &BatchReport{}
	defer func() { report.Duration = time.Since(start) }()
	var selected []string
	for _, f := range files {
		ok, reason := selectFile(f, req)
		if !ok {
			logrus.WithField("path", f).Debug("skipping file: " + reason)
			report.recordSkip()
			continue
		}
		selected = append(selected, f)
	}

	workers := req.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > len(selected) {
		workers = len(selected)
	}
	if workers == 0 {
		return report, nil
	}

	newGuard := req.NewGuard
	if newGuard == nil {
		newGuard = NewInterruptGuard
	}

	var mu sync.Mutex
	jobs := make(chan string, len(selected))
	for _, f := range selected {
		jobs <- f
	}
	close(jobs)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			guard := newGuard()
			if req.ReleaseGuard != nil {
				defer req.ReleaseGuard(guard)
			}
			for path := range jobs {
				n, err := runOne(req, path, guard)
				mu.Lock()
				if err != nil {
					logrus.WithField("path", path).WithError(err).Warn("batch item failed")
					report.recordFailure(path, err.Error())
				} else {
					report.recordSuccess(n)
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	return report, nil
}

// runOne applies req.Operation to a single path, returning the number of
// plaintext bytes processed on success.
func runOne(req BatchRequest, path string, guard *InterruptGuard) (int64, error) {
	if req.DryRun {
		return 0, nil
	}

	var processed int64
	sink := progressCounter{inner: progressOrNoop(req.Progress), total: &processed}

	switch req.Operation {
	case BatchEncrypt:
		err := Encrypt(EncryptRequest{
			SourcePath:     path,
			ForceOverwrite: req.ForceOverwrite,
			Password:       append([]byte(nil), req.Password...),
			Level:          req.Level,
			Keyfile:        req.Keyfile,
			Guard:          guard,
			Progress:       sink,
		})
		return processed, err
	case BatchDecrypt:
		err := Decrypt(DecryptRequest{
			ContainerPath:  path,
			ForceOverwrite: req.ForceOverwrite,
			Password:       append([]byte(nil), req.Password...),
			Keyfile:        req.Keyfile,
			Guard:          guard,
			Progress:       sink,
		})
		return processed, err
	default:
		return 0, errInternalCrypto("unknown batch operation", nil)
	}
}

// progressCounter forwards to inner while also accumulating into total, so
// the batch driver can report BytesProcessed per file without every core
// call needing to return a byte count directly.
type progressCounter struct {
	inner ProgressSink
	total *int64
}

func (p progressCounter) OnBytes(n int) {
	*p.total += int64(n)
	p.inner.OnBytes(n)
}

func (p progressCounter) OnFinish(total int64) {
	p.inner.OnFinish(total)
}

// enumerate walks root, returning regular files. recursive false limits the
// walk to root's immediate children.
func enumerate(root string, recursive bool) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var files []string
	if !recursive {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.Type().IsRegular() {
				files = append(files, filepath.Join(root, e.Name()))
			}
		}
		return files, nil
	}

	err = filepath.Walk(root, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.Mode().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// selectFile applies the include/exclude glob rule and the
// already-encrypted/not-encrypted rule (spec §4.7). Globs match against
// the basename only.
func selectFile(path string, req BatchRequest) (bool, string) {
	base := filepath.Base(path)

	switch req.Operation {
	case BatchEncrypt:
		if strings.HasSuffix(base, containerExt) {
			return false, "already encrypted"
		}
	case BatchDecrypt:
		if !strings.HasSuffix(base, containerExt) {
			return false, "not a container"
		}
	}

	if len(req.Includes) > 0 {
		matched := false
		for _, pat := range req.Includes {
			if ok, _ := doublestar.Match(pat, base); ok {
				matched = true
				break
			}
		}
		if !matched {
			return false, "did not match any include glob"
		}
	}

	for _, pat := range req.Excludes {
		if ok, _ := doublestar.Match(pat, base); ok {
			return false, "matched an exclude glob"
		}
	}

	return true, ""
}
