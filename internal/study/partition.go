package study

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/at-ishikawa/shokyuu/internal/vocabulary"
)

const (
	// PartSize is the number of main entries in each part.
	PartSize = 20
	// PartitionThreshold is the minimum number of main entries for a lesson to be split into parts.
	PartitionThreshold = 30

	partitionAllID          = "all"
	partitionOptionalOnlyID = "optional-only"
	partIDPrefix            = "part-"
)

type PartitionKind int

const (
	PartitionAll PartitionKind = iota
	PartitionRange
	PartitionOptionalOnly
)

// Partition selects the subset of a lesson that is studied.
type Partition struct {
	Kind PartitionKind
	// Start and End are 0-based indexes into the main (non-optional) entries, End exclusive.
	Start int
	End   int
}

func AllEntries() Partition {
	return Partition{Kind: PartitionAll}
}

// Range selects main entries [start, end). BuildDeck rejects it on lessons with fewer than
// PartitionThreshold main entries, where AllEntries is the only partition.
func Range(start, end int) Partition {
	return Partition{Kind: PartitionRange, Start: start, End: end}
}

func OptionalOnly() Partition {
	return Partition{Kind: PartitionOptionalOnly}
}

func (p Partition) String() string {
	switch p.Kind {
	case PartitionRange:
		return fmt.Sprintf("range(%d-%d)", p.Start, p.End)
	case PartitionOptionalOnly:
		return partitionOptionalOnlyID
	default:
		return partitionAllID
	}
}

// Part is one chunk of a lesson's main entries.
type Part struct {
	ID    string
	Name  string
	Start int
	End   int
	Count int
}

func (p Part) Partition() Partition {
	return Range(p.Start, p.End)
}

// Parts splits the main entries into chunks of PartSize.
// Lessons with fewer than PartitionThreshold main entries are not split.
func Parts(entries []vocabulary.Entry) []Part {
	total := len(mainEntries(entries))
	if total < PartitionThreshold {
		return nil
	}

	var parts []Part
	for i, start := 0, 0; start < total; i, start = i+1, start+PartSize {
		end := min(start+PartSize, total)
		parts = append(parts, Part{
			ID:    partIDPrefix + strconv.Itoa(i+1),
			Name:  fmt.Sprintf("Part %d (%d-%d)", i+1, start+1, end),
			Start: start,
			End:   end,
			Count: end - start,
		})
	}
	return parts
}

// PartitionOption is one selectable partition with a label for display.
type PartitionOption struct {
	ID        string
	Label     string
	Count     int
	Partition Partition
}

// PartitionOptions lists the partitions a learner can pick for a lesson.
// The complete lesson count depends on includeOptional.
func PartitionOptions(entries []vocabulary.Entry, includeOptional bool) []PartitionOption {
	main := mainEntries(entries)
	optional := optionalEntries(entries)

	count := len(main)
	if includeOptional {
		count = len(entries)
	}
	options := []PartitionOption{
		{
			ID:        partitionAllID,
			Label:     fmt.Sprintf("Complete lesson (%d words)", count),
			Count:     count,
			Partition: AllEntries(),
		},
	}
	for _, part := range Parts(entries) {
		options = append(options, PartitionOption{
			ID:        part.ID,
			Label:     part.Name,
			Count:     part.Count,
			Partition: part.Partition(),
		})
	}
	if len(optional) > 0 {
		options = append(options, PartitionOption{
			ID:        partitionOptionalOnlyID,
			Label:     fmt.Sprintf("Optional words only (%d words)", len(optional)),
			Count:     len(optional),
			Partition: OptionalOnly(),
		})
	}
	return options
}

// ParsePartition resolves "all", "part-N" or "optional-only" against the lesson's entries.
func ParsePartition(id string, entries []vocabulary.Entry) (Partition, error) {
	switch id {
	case "", partitionAllID:
		return AllEntries(), nil
	case partitionOptionalOnlyID:
		return OptionalOnly(), nil
	}
	if strings.HasPrefix(id, partIDPrefix) {
		for _, part := range Parts(entries) {
			if part.ID == id {
				return part.Partition(), nil
			}
		}
	}
	return Partition{}, fmt.Errorf("%q: %w", id, ErrInvalidPartition)
}

// PartitionLabel describes the partition for a progress header.
// It returns an empty string for the complete lesson.
func PartitionLabel(p Partition, entries []vocabulary.Entry) string {
	switch p.Kind {
	case PartitionOptionalOnly:
		return "Optional words only"
	case PartitionRange:
		for _, part := range Parts(entries) {
			if part.Start == p.Start && part.End == p.End {
				return part.Name
			}
		}
		return fmt.Sprintf("Words %d-%d", p.Start+1, p.End)
	default:
		return ""
	}
}

func mainEntries(entries []vocabulary.Entry) []vocabulary.Entry {
	return vocabulary.Lesson{Entries: entries}.MainEntries()
}

func optionalEntries(entries []vocabulary.Entry) []vocabulary.Entry {
	return vocabulary.Lesson{Entries: entries}.OptionalEntries()
}
