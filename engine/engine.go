package engine

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	pb "github.com/cheggaaa/pb/v3"
	"github.com/fatih/color"
	logging "github.com/op/go-logging"

	"github.com/FitrahHaque/Huffman-Engine/compressor/huffman"
)

var log = logging.MustGetLogger("engine")

var Engines = [...]string{
	"huffman",
}

// codec compresses a whole buffer and expands it again. size is the
// original length when known, or negative.
type codec struct {
	compress   func(content []byte) ([]byte, error)
	decompress func(content []byte, size int) ([]byte, error)
	needsSize  func(content []byte) (bool, error)
}

var codecs = map[string]codec{
	"huffman": {
		compress: huffman.Compress,
		decompress: func(content []byte, size int) ([]byte, error) {
			if size < 0 {
				return huffman.Decompress(content)
			}
			return huffman.DecompressSize(content, size)
		},
		needsSize: huffman.IsSingleSymbol,
	},
}

var ErrUnknownEngine = errors.New("unknown compression engine")

// Options configures a run over a list of files.
type Options struct {
	Algorithms      []string
	OutputExtension string
	Delete          bool
	// Size is the original length for single-symbol containers, or -1.
	Size  int
	Quiet bool
	Out   io.Writer
}

func (o Options) out() io.Writer {
	if o.Out == nil {
		return os.Stdout
	}
	return o.Out
}

func lookup(algorithms []string) ([]codec, error) {
	if len(algorithms) == 0 {
		return nil, fmt.Errorf("no algorithm given: %w", ErrUnknownEngine)
	}
	chosen := make([]codec, 0, len(algorithms))
	for _, algorithm := range algorithms {
		c, ok := codecs[algorithm]
		if !ok {
			return nil, fmt.Errorf("%q (valid: %s): %w", algorithm, strings.Join(Engines[:], ", "), ErrUnknownEngine)
		}
		chosen = append(chosen, c)
	}
	return chosen, nil
}

type compressor struct {
	compressionEngine string
	compressedContent []byte
	singleSymbol      bool
}

func (c *compressor) write(content []byte) (int, error) {
	engine := codecs[c.compressionEngine]
	compressed, err := engine.compress(content)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", c.compressionEngine, err)
	}
	if c.singleSymbol, err = engine.needsSize(compressed); err != nil {
		return 0, fmt.Errorf("%s: %w", c.compressionEngine, err)
	}
	c.compressedContent = compressed
	return len(c.compressedContent), nil
}

// Result describes one processed file.
type Result struct {
	Input, Output         string
	InputSize, OutputSize int
	SingleSymbol          bool
	Elapsed               time.Duration
}

func (r Result) Ratio() float64 {
	if r.InputSize == 0 {
		return 0
	}
	return float64(r.OutputSize) / float64(r.InputSize) * 100
}

func CompressFiles(files []string, opts Options) ([]Result, error) {
	if _, err := lookup(opts.Algorithms); err != nil {
		return nil, err
	}
	bar := startBar(files, opts)
	defer bar.Finish()

	results := make([]Result, 0, len(files))
	for _, file := range files {
		result, err := compressFile(opts.Algorithms, file, ChangeExtension(file, opts.OutputExtension))
		if err != nil {
			return results, err
		}
		bar.Add(result.InputSize)
		printCompressed(opts.out(), result)
		results = append(results, result)
	}
	if opts.Delete {
		if err := deleteFiles(files); err != nil {
			return results, err
		}
	}
	return results, nil
}

func compressFile(algorithms []string, filePath string, outputFileName string) (Result, error) {
	fileContent, err := os.ReadFile(filePath)
	if err != nil {
		return Result{}, err
	}
	log.Debugf("compressing %s (%d bytes) with %s", filePath, len(fileContent), strings.Join(algorithms, ","))
	started := time.Now()
	compressed, singleSymbol, err := compress(fileContent, algorithms)
	if err != nil {
		return Result{}, fmt.Errorf("compressing %s: %w", filePath, err)
	}
	if err = os.WriteFile(outputFileName, compressed, 0644); err != nil {
		return Result{}, err
	}
	result := Result{
		Input:        filePath,
		Output:       outputFileName,
		InputSize:    len(fileContent),
		OutputSize:   len(compressed),
		SingleSymbol: singleSymbol,
		Elapsed:      time.Since(started),
	}
	log.Infof("compressed %s -> %s in %v", result.Input, result.Output, result.Elapsed)
	return result, nil
}

// compress applies the algorithms in order. singleSymbol reports whether
// the first stage needs the original length to be expanded again.
func compress(content []byte, algorithms []string) ([]byte, bool, error) {
	var singleSymbol bool
	for i, algorithm := range algorithms {
		file := compressor{
			compressionEngine: algorithm,
		}
		if _, err := file.write(content); err != nil {
			return nil, false, err
		}
		if i == 0 {
			singleSymbol = file.singleSymbol
		}
		content = file.compressedContent
	}
	return content, singleSymbol, nil
}

func DecompressFiles(files []string, opts Options) ([]Result, error) {
	if _, err := lookup(opts.Algorithms); err != nil {
		return nil, err
	}
	if opts.Size >= 0 && len(files) > 1 {
		return nil, errors.New("--size applies to a single file")
	}
	bar := startBar(files, opts)
	defer bar.Finish()

	results := make([]Result, 0, len(files))
	for _, file := range files {
		result, err := decompressFile(opts.Algorithms, file, ChangeExtension(file, opts.OutputExtension), opts.Size)
		if err != nil {
			return results, err
		}
		bar.Add(result.InputSize)
		printDecompressed(opts.out(), result)
		results = append(results, result)
	}
	if opts.Delete {
		if err := deleteFiles(files); err != nil {
			return results, err
		}
	}
	return results, nil
}

func decompressFile(algorithms []string, filePath string, outputFileName string, size int) (Result, error) {
	fileContent, err := os.ReadFile(filePath)
	if err != nil {
		return Result{}, err
	}
	log.Debugf("decompressing %s (%d bytes)", filePath, len(fileContent))
	started := time.Now()
	decompressed, err := decompress(fileContent, algorithms, size)
	if errors.Is(err, huffman.ErrLengthRequired) {
		return Result{}, fmt.Errorf("%s holds a single repeated byte, pass its original length with --size: %w", filePath, err)
	}
	if err != nil {
		return Result{}, fmt.Errorf("decompressing %s: %w", filePath, err)
	}
	if err = os.WriteFile(outputFileName, decompressed, 0644); err != nil {
		return Result{}, err
	}
	result := Result{
		Input:      filePath,
		Output:     outputFileName,
		InputSize:  len(fileContent),
		OutputSize: len(decompressed),
		Elapsed:    time.Since(started),
	}
	log.Infof("decompressed %s -> %s in %v", result.Input, result.Output, result.Elapsed)
	return result, nil
}

// decompress undoes the algorithms in reverse order. size applies to the
// last stage undone, the one that saw the original content.
func decompress(content []byte, algorithms []string, size int) ([]byte, error) {
	for i := len(algorithms) - 1; i >= 0; i-- {
		stageSize := -1
		if i == 0 {
			stageSize = size
		}
		out, err := codecs[algorithms[i]].decompress(content, stageSize)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", algorithms[i], err)
		}
		content = out
	}
	return content, nil
}

// BenchmarkFiles compresses and expands every file in memory and checks
// that the result matches the input.
func BenchmarkFiles(files []string, opts Options) ([]Benchmark, error) {
	if _, err := lookup(opts.Algorithms); err != nil {
		return nil, err
	}
	bar := startBar(files, opts)
	defer bar.Finish()

	benchmarks := make([]Benchmark, 0, len(files))
	for _, file := range files {
		fileContent, err := os.ReadFile(file)
		if err != nil {
			return benchmarks, err
		}
		b, err := benchmark(file, fileContent, opts.Algorithms)
		if err != nil {
			return benchmarks, err
		}
		bar.Add(len(fileContent))
		printBenchmark(opts.out(), b)
		benchmarks = append(benchmarks, b)
	}
	return benchmarks, nil
}

type Benchmark struct {
	File                       string
	OriginalSize, CompressSize int
	Compress, Decompress       time.Duration
}

func benchmark(file string, content []byte, algorithms []string) (Benchmark, error) {
	started := time.Now()
	compressed, _, err := compress(content, algorithms)
	if err != nil {
		return Benchmark{}, fmt.Errorf("compressing %s: %w", file, err)
	}
	compressTime := time.Since(started)

	started = time.Now()
	decompressed, err := decompress(compressed, algorithms, len(content))
	if err != nil {
		return Benchmark{}, fmt.Errorf("decompressing %s: %w", file, err)
	}
	decompressTime := time.Since(started)

	if !bytes.Equal(content, decompressed) {
		return Benchmark{}, fmt.Errorf("round trip of %s does not match the original", file)
	}
	log.Debugf("benchmarked %s: %v / %v", file, compressTime, decompressTime)
	return Benchmark{
		File:         file,
		OriginalSize: len(content),
		CompressSize: len(compressed),
		Compress:     compressTime,
		Decompress:   decompressTime,
	}, nil
}

func startBar(files []string, opts Options) *pb.ProgressBar {
	var total int64
	for _, file := range files {
		if info, err := os.Stat(file); err == nil {
			total += info.Size()
		}
	}
	bar := pb.New64(total)
	bar.Set(pb.Bytes, true)
	bar.SetWriter(os.Stderr)
	if opts.Quiet {
		bar.SetWriter(io.Discard)
	}
	return bar.Start()
}

func printCompressed(w io.Writer, r Result) {
	green := color.New(color.FgGreen)
	green.Fprintf(w, "%s -> %s\n", r.Input, r.Output)
	fmt.Fprintf(w, "Original size (in bytes): %v\n", r.InputSize)
	fmt.Fprintf(w, "Compressed size (in bytes): %v\n", r.OutputSize)
	fmt.Fprintf(w, "Compression ratio: %.2f%%\n", r.Ratio())
	if r.SingleSymbol {
		color.New(color.FgYellow).Fprintf(w, "%s is a single repeated byte; decompress it with --size %d\n", r.Input, r.InputSize)
	}
}

func printDecompressed(w io.Writer, r Result) {
	color.New(color.FgGreen).Fprintf(w, "%s -> %s\n", r.Input, r.Output)
	fmt.Fprintf(w, "Decompressed size (in bytes): %v\n", r.OutputSize)
}

func printBenchmark(w io.Writer, b Benchmark) {
	ratio := 0.0
	if b.OriginalSize > 0 {
		ratio = float64(b.CompressSize) / float64(b.OriginalSize) * 100
	}
	color.New(color.FgCyan).Fprintf(w, "%s\n", b.File)
	fmt.Fprintf(w, "\tsize: %v -> %v bytes (%.2f%%)\n", b.OriginalSize, b.CompressSize, ratio)
	fmt.Fprintf(w, "\tcompress: %v, decompress: %v\n", b.Compress, b.Decompress)
}

func deleteFiles(files []string) error {
	for _, file := range files {
		if err := os.Remove(file); err != nil {
			return err
		}
	}
	return nil
}
