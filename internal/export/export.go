// Package export renders the compiled tables as CFS SCH style C sources:
// a wake-up MID define header, the schedule definition table and the
// message definition table.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cfstools/schedtab/internal/schedule"
)

// Clock supplies the generation timestamp; injectable for tests.
type Clock func() time.Time

// Input bundles everything the exporter renders.
type Input struct {
	Project    string
	Defines    []schedule.Define
	Table      *schedule.Table
	IndexTable []string
}

// writeFileHeader emits the comment block carried at the top of every
// generated file.
func writeFileHeader(w io.Writer, project, table string, now time.Time) {
	fmt.Fprintf(w, "/* Created: %s\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "   Project: %s\n", project)
	fmt.Fprintf(w, "   Table  : %s */\n\n", table)
}

// WriteDefines emits the wake-up message ID define header.
func WriteDefines(w io.Writer, in Input, now time.Time) error {
	writeFileHeader(w, in.Project, "wake-up message IDs", now)

	guard := strings.ToUpper(in.Project) + "_WAKEUP_MIDS_H"
	fmt.Fprintf(w, "#ifndef %s\n#define %s\n\n", guard, guard)

	width := symbolWidth(in.Defines)
	for _, d := range in.Defines {
		fmt.Fprintf(w, "#define %-*s  0x%04X\n", width, d.Symbol, d.ID)
	}

	_, err := fmt.Fprintf(w, "\n#endif /* %s */\n", guard)
	return err
}

// WriteScheduleTable emits the schedule definition table source. Every
// row is exactly the table's slot count wide; unused slots are emitted
// explicitly so the target can index the table by fixed stride.
func WriteScheduleTable(w io.Writer, in Input, now time.Time) error {
	writeFileHeader(w, in.Project, "schedule definition", now)

	fmt.Fprintf(w, "SCH_ScheduleEntry_t SCH_DefaultScheduleTable[] =\n{\n")

	for i, row := range in.Table.Rows() {
		name := row.Name
		if name == "" {
			name = fmt.Sprintf("row %d", i)
		}
		fmt.Fprintf(w, "  /* %s */\n", name)
		for _, e := range row.Entries {
			cols := e.Strings()
			fmt.Fprintf(w, "  { %-12s %-22s %2s, %2s, %s, %s },\n",
				cols[0]+",", cols[1]+",", cols[2], cols[3], cols[4], cols[5])
		}
	}

	_, err := fmt.Fprintf(w, "};\n")
	return err
}

// WriteMessageTable emits the message definition table source: one entry
// per command slot, addressed directly by wake-up ID.
func WriteMessageTable(w io.Writer, in Input, now time.Time) error {
	writeFileHeader(w, in.Project, "message definition", now)

	fmt.Fprintf(w, "SCH_MessageEntry_t SCH_DefaultMessageTable[] =\n{\n")

	width := 0
	for _, sym := range in.IndexTable {
		if len(sym) > width {
			width = len(sym)
		}
	}
	for i, sym := range in.IndexTable {
		fmt.Fprintf(w, "  { { %-*s } },  /* command ID %d */\n", width, sym, i)
	}

	_, err := fmt.Fprintf(w, "};\n")
	return err
}

// ExportAll writes the three generated sources into dir using the given
// file prefix and returns the paths written.
func ExportAll(dir, prefix string, in Input, clock Clock) ([]string, error) {
	if clock == nil {
		clock = time.Now
	}
	now := clock()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("export: create %s: %w", dir, err)
	}

	files := []struct {
		name  string
		write func(io.Writer, Input, time.Time) error
	}{
		{prefix + "_wakeup_mids.h", WriteDefines},
		{prefix + "_def_apptbl.c", WriteScheduleTable},
		{prefix + "_def_msgtbl.c", WriteMessageTable},
	}

	var written []string
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		out, err := os.Create(path)
		if err != nil {
			return written, fmt.Errorf("export: create %s: %w", path, err)
		}
		werr := f.write(out, in, now)
		cerr := out.Close()
		if werr != nil {
			return written, fmt.Errorf("export: write %s: %w", path, werr)
		}
		if cerr != nil {
			return written, fmt.Errorf("export: close %s: %w", path, cerr)
		}
		written = append(written, path)
	}
	return written, nil
}

func symbolWidth(defines []schedule.Define) int {
	width := 0
	for _, d := range defines {
		if len(d.Symbol) > width {
			width = len(d.Symbol)
		}
	}
	return width
}
