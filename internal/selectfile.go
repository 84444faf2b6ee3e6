package internal

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// FindPEMFiles returns the sorted *.pem files in a directory.
func FindPEMFiles(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.pem"))
	if err != nil {
		return nil, fmt.Errorf("listing PEM files in %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}

// ChooseFile prompts for a 1-based selection among files, reading one line
// from in and writing the listing and prompt to out. Empty input selects
// the first file. A non-numeric or out-of-range answer is fatal: the tool
// fails fast rather than re-prompting.
func ChooseFile(files []string, in io.Reader, out io.Writer) (string, error) {
	fmt.Fprintln(out, "Available PEM files:")
	for i, f := range files {
		fmt.Fprintf(out, "  %d. %s\n", i+1, f)
	}
	fmt.Fprintf(out, "Enter the number of the file to process (default 1): ")

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("reading selection: %w", err)
	}
	choice := strings.TrimSpace(line)
	if choice == "" {
		return files[0], nil
	}

	index, err := strconv.Atoi(choice)
	if err != nil {
		return "", fmt.Errorf("invalid selection %q", choice)
	}
	if index < 1 || index > len(files) {
		return "", fmt.Errorf("selection %d out of range 1-%d", index, len(files))
	}
	return files[index-1], nil
}
