package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	logging "github.com/op/go-logging"

	"github.com/FitrahHaque/Huffman-Engine/engine"
)

var Commands = [...]string{"compress", "decompress", "benchmark", "help"}

var log = logging.MustGetLogger("main")

var leveledLogBackend logging.LeveledBackend

func startLogging() {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	formatter := logging.MustStringFormatter("%{level:8s} %{module:-10s} | %{message}")
	leveled := logging.AddModuleLevel(logging.NewBackendFormatter(backend, formatter))
	leveled.SetLevel(logging.INFO, "")
	logging.SetBackend(leveled)
	leveledLogBackend = leveled
}

func main() {
	startLogging()
	application := os.Args[0]
	flag.CommandLine = flag.NewFlagSet(application, flag.ExitOnError)
	compressCmd := flag.Bool(Commands[0], false, "Compress File")
	decompressCmd := flag.Bool(Commands[1], false, "Decompress File")
	benchmarkCmd := flag.Bool(Commands[2], false, "Benchmark File")
	helpCmd := flag.Bool(Commands[3], false, "Help")

	if len(os.Args) == 1 {
		fmt.Println("Please provide commands")
		os.Exit(1)
	}
	flag.CommandLine.Parse(findIntersection(
		[]string{
			"--compress",
			"--decompress",
			"--benchmark",
			"--help",
		},
		os.Args[1:2],
	))
	commandsSelected := countTrue([]bool{*compressCmd, *decompressCmd, *benchmarkCmd, *helpCmd})
	args := os.Args[2:]
	if commandsSelected == 0 {
		if conflicting := findIntersection([]string{"--decompress", "--benchmark", "--help"}, os.Args[1:]); len(conflicting) > 0 {
			fmt.Println("The command must come first")
			os.Exit(1)
		}
		fmt.Println("No command is selected. Compression by default")
		*compressCmd = true
		args = os.Args[1:]
	}

	if *helpCmd {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", application)
		fmt.Fprintf(os.Stderr, "Valid commands include:\n\t%s\n", strings.Join(Commands[:], ", "))
		fmt.Fprintf(os.Stderr, "Flag:\n")
		flag.PrintDefaults()
		return
	}

	var err error
	switch {
	case *compressCmd:
		err = runCompress(application, args)
	case *decompressCmd:
		err = runDecompress(application, args)
	case *benchmarkCmd:
		err = runBenchmark(application, args)
	}
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

type commonFlags struct {
	algorithm *string
	debug     *bool
	quiet     *bool
}

func newFlagSet(application, command, usage string, valid []string) (*flag.FlagSet, commonFlags) {
	fs := flag.NewFlagSet(command, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s --%s [OPTIONS] <file(s)>\n", application, command)
		fmt.Fprintf(os.Stderr, "%s\n", usage)
		fmt.Fprintf(os.Stderr, "Valid options include:\n\t%s\n", strings.Join(valid, ", "))
		fmt.Fprintf(os.Stderr, "Flag:\n")
		fs.PrintDefaults()
	}
	return fs, commonFlags{
		algorithm: fs.String("algorithm", "huffman", fmt.Sprintf("Which algorithm(s) to use, choices include: \n\t%s", strings.Join(engine.Engines[:], ", "))),
		debug:     fs.Bool("debug", false, "Log debug detail to stderr"),
		quiet:     fs.Bool("quiet", false, "Hide the progress bar"),
	}
}

func (c commonFlags) apply(opts *engine.Options) {
	if *c.debug {
		leveledLogBackend.SetLevel(logging.DEBUG, "")
	}
	opts.Algorithms = strings.Split(*c.algorithm, ",")
	trimSpace(opts.Algorithms)
	opts.Quiet = *c.quiet
}

func runCompress(application string, args []string) error {
	fs, common := newFlagSet(application, "compress", "Compress each file into <name><outfileext>",
		[]string{"algorithm", "delete", "outfileext", "quiet", "debug", "help"})
	deleteAfter := fs.Bool("delete", false, "Delete file after compression")
	outputFileExtension := fs.String("outfileext", ".huff", "File extension used for the result")
	fs.Parse(args)

	files, err := fileArgs(fs)
	if err != nil {
		fs.Usage()
		return err
	}
	opts := engine.Options{OutputExtension: *outputFileExtension, Delete: *deleteAfter, Size: -1}
	common.apply(&opts)
	log.Debugf("compress %v with %v", files, opts.Algorithms)
	_, err = engine.CompressFiles(files, opts)
	return err
}

func runDecompress(application string, args []string) error {
	fs, common := newFlagSet(application, "decompress", "Decompress each file into <name><outfileext>",
		[]string{"algorithm", "delete", "outfileext", "size", "quiet", "debug", "help"})
	deleteAfter := fs.Bool("delete", false, "Delete file after decompression")
	outputFileExtension := fs.String("outfileext", ".out", "File extension used for the result")
	size := fs.Int("size", -1, "Original length in bytes, required for files holding a single repeated byte")
	fs.Parse(args)

	files, err := fileArgs(fs)
	if err != nil {
		fs.Usage()
		return err
	}
	opts := engine.Options{OutputExtension: *outputFileExtension, Delete: *deleteAfter, Size: *size}
	common.apply(&opts)
	log.Debugf("decompress %v with %v", files, opts.Algorithms)
	_, err = engine.DecompressFiles(files, opts)
	return err
}

func runBenchmark(application string, args []string) error {
	fs, common := newFlagSet(application, "benchmark", "Compress and decompress each file in memory and report timings",
		[]string{"algorithm", "quiet", "debug", "help"})
	fs.Parse(args)

	files, err := fileArgs(fs)
	if err != nil {
		fs.Usage()
		return err
	}
	opts := engine.Options{Size: -1}
	common.apply(&opts)
	_, err = engine.BenchmarkFiles(files, opts)
	return err
}

// fileArgs splits the first positional argument on commas and checks that
// every file exists.
func fileArgs(fs *flag.FlagSet) ([]string, error) {
	if fs.NArg() == 0 {
		return nil, fmt.Errorf("no file provided for %s", fs.Name())
	}
	files := strings.Split(strings.Join(fs.Args(), ","), ",")
	trimSpace(files)
	for _, f := range files {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			return nil, fmt.Errorf("could not open the provided file %s", f)
		}
	}
	return files, nil
}

func countTrue(commands []bool) int {
	count := 0
	for _, c := range commands {
		if c {
			count++
		}
	}
	return count
}

func findIntersection(commandList, argList []string) []string {
	set := make(map[string]struct{}, len(commandList))
	for _, c := range commandList {
		set[c] = struct{}{}
	}
	var out []string
	for _, arg := range argList {
		if _, ok := set[arg]; ok {
			out = append(out, arg)
		}
	}
	return out
}

func trimSpace(s []string) {
	for i := range s {
		s[i] = strings.TrimSpace(s[i])
	}
}
