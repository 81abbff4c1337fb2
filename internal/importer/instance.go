package importer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/piwi3910/rectpack/internal/model"
)

// ErrMalformedInstance is returned when a 2BP file cannot be parsed.
var ErrMalformedInstance = errors.New("malformed instance file")

// 2BP header lines following the PROBLEM marker.
const (
	headerItemCount = iota
	headerNumbering
	headerBinSize
	headerDone
)

// ParseInstances reads every instance of a 2BP benchmark file. Each block
// starts with a line containing PROBLEM, followed by three header lines
// (item count, instance numbering, bin width and height) and one
// "width height" line per item. Blocks are separated by blank lines;
// descriptive text after the numbers on any line is ignored.
func ParseInstances(r io.Reader) ([]model.Instance, error) {
	var (
		instances []model.Instance
		current   *model.Instance
		expected  int
		header    = headerDone
		lineNum   int
	)

	flush := func() error {
		if current == nil {
			return nil
		}
		if header != headerDone {
			return fmt.Errorf("%w: %s: incomplete header", ErrMalformedInstance, current.Name)
		}
		if len(current.Items) != expected {
			return fmt.Errorf("%w: %s: header declares %d items, found %d",
				ErrMalformedInstance, current.Name, expected, len(current.Items))
		}
		instances = append(instances, *current)
		current = nil
		return nil
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		fields := strings.Fields(line)

		if len(fields) == 0 {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}

		if strings.Contains(line, "PROBLEM") {
			if err := flush(); err != nil {
				return nil, err
			}
			current = &model.Instance{Name: fmt.Sprintf("instance %d", len(instances))}
			header = headerItemCount
			continue
		}

		if current == nil {
			return nil, fmt.Errorf("%w: line %d: data outside a PROBLEM block", ErrMalformedInstance, lineNum)
		}

		nums, err := leadingInts(fields, header)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedInstance, lineNum, err)
		}

		switch header {
		case headerItemCount:
			expected = nums[0]
			current.Items = make([]model.Item, 0, expected)
			header = headerNumbering
		case headerNumbering:
			header = headerBinSize
		case headerBinSize:
			current.BinWidth, current.BinHeight = nums[0], nums[1]
			header = headerDone
		default:
			n := len(current.Items) + 1
			current.Items = append(current.Items, model.Item{
				ID:       strconv.Itoa(n),
				Label:    fmt.Sprintf("Item %d", n),
				Width:    nums[0],
				Height:   nums[1],
				Quantity: 1,
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading instances: %w", err)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	if len(instances) == 0 {
		return nil, fmt.Errorf("%w: no PROBLEM blocks", ErrMalformedInstance)
	}
	return instances, nil
}

// leadingInts parses the integers a line must start with for the given
// parser state. The numbering header needs none.
func leadingInts(fields []string, header int) ([]int, error) {
	want := 2
	switch header {
	case headerItemCount:
		want = 1
	case headerNumbering:
		return nil, nil
	}
	if len(fields) < want {
		return nil, fmt.Errorf("expected %d numbers, got %q", want, strings.Join(fields, " "))
	}
	nums := make([]int, want)
	for i := range nums {
		n, err := strconv.Atoi(fields[i])
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", fields[i])
		}
		nums[i] = n
	}
	return nums, nil
}

// ImportInstances reads all instances from a 2BP file.
func ImportInstances(path string) ([]model.Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening instance file: %w", err)
	}
	defer f.Close()
	return ParseInstances(f)
}

// SelectInstance returns instance idx (0-based) of the 2BP file at path.
func SelectInstance(path string, idx int) (model.Instance, error) {
	instances, err := ImportInstances(path)
	if err != nil {
		return model.Instance{}, err
	}
	if idx < 0 || idx >= len(instances) {
		return model.Instance{}, fmt.Errorf("instance %d out of range: file holds %d", idx, len(instances))
	}
	return instances[idx], nil
}
