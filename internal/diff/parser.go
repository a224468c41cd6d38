package diff

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	diffHeaderRegex      = regexp.MustCompile(`^diff --git a/(.+) b/(.+)$`)
	hunkHeaderRegex      = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@(.*)$`)
	oldFileRegex         = regexp.MustCompile(`^--- (?:a/)?(.+)$`)
	newFileRegex         = regexp.MustCompile(`^\+\+\+ (?:b/)?(.+)$`)
	similarityRegex      = regexp.MustCompile(`^similarity index (\d+)%$`)
	renameFromRegex      = regexp.MustCompile(`^rename from (.+)$`)
	renameToRegex        = regexp.MustCompile(`^rename to (.+)$`)
	binaryFilesRegex     = regexp.MustCompile(`^Binary files .+ and .+ differ$`)
	modeRegex            = regexp.MustCompile(`^(?:old|new) mode (\d+)$`)
	indexLineRegex       = regexp.MustCompile(`^index [a-f0-9]+\.\.[a-f0-9]+`)
	newFileModeRegex     = regexp.MustCompile(`^new file mode (\d+)$`)
	deletedFileModeRegex = regexp.MustCompile(`^deleted file mode (\d+)$`)
)

// Parse parses unified diff text into structured File slices. It handles
// standard unified diff format including:
//   - Binary files
//   - Renamed files with similarity index
//   - New files (--- /dev/null)
//   - Deleted files (+++ /dev/null)
//   - Permission changes (old mode / new mode)
//   - Headerless diffs that start directly at "--- a/..." or "@@"
//
// Empty input yields no files and no error. Non-empty input that contains
// no recognizable diff structure is an error so the caller can fall back to
// showing the raw text.
func Parse(text string) ([]File, error) {
	if text == "" {
		return nil, nil
	}

	var files []File
	var currentFile *File
	var currentHunk *Hunk
	oldLineNum := 0
	newLineNum := 0
	oldRemain := 0
	newRemain := 0

	flushHunk := func() {
		if currentFile != nil && currentHunk != nil {
			currentFile.Hunks = append(currentFile.Hunks, *currentHunk)
		}
		currentHunk = nil
	}
	// closeHunkIfDone ends the hunk once both header counts are consumed,
	// so a following "--- a/..." in concatenated diff -u output opens a
	// new file instead of being read as a deletion.
	closeHunkIfDone := func() {
		if oldRemain <= 0 && newRemain <= 0 {
			flushHunk()
		}
	}
	flushFile := func() {
		flushHunk()
		if currentFile != nil {
			files = append(files, *currentFile)
		}
		currentFile = nil
	}

	for _, line := range strings.Split(text, "\n") {
		// Start of a new file diff
		if matches := diffHeaderRegex.FindStringSubmatch(line); matches != nil {
			flushFile()
			currentFile = &File{OldPath: matches[1], NewPath: matches[2]}
			continue
		}

		// Headerless diffs: a "--- " line outside any hunk opens a file.
		if strings.HasPrefix(line, "--- ") && currentHunk == nil {
			if currentFile == nil || len(currentFile.Hunks) > 0 {
				flushFile()
				currentFile = &File{}
			}
			if line == "--- /dev/null" {
				currentFile.IsNew = true
				currentFile.OldPath = "/dev/null"
			} else if matches := oldFileRegex.FindStringSubmatch(line); matches != nil {
				currentFile.OldPath = matches[1]
			}
			continue
		}

		if currentFile != nil && currentHunk == nil && strings.HasPrefix(line, "+++ ") {
			if line == "+++ /dev/null" {
				currentFile.IsDeleted = true
				currentFile.NewPath = "/dev/null"
			} else if matches := newFileRegex.FindStringSubmatch(line); matches != nil {
				currentFile.NewPath = matches[1]
			}
			continue
		}

		if currentFile == nil {
			// A bare hunk header with no file context still opens a file.
			if hunkHeaderRegex.MatchString(line) {
				currentFile = &File{}
			} else {
				continue
			}
		}

		if currentHunk == nil {
			if matches := similarityRegex.FindStringSubmatch(line); matches != nil {
				if similarity, err := strconv.Atoi(matches[1]); err == nil && similarity > 0 {
					currentFile.IsRenamed = true
				}
				continue
			}
			if matches := renameFromRegex.FindStringSubmatch(line); matches != nil {
				currentFile.OldPath = matches[1]
				currentFile.IsRenamed = true
				continue
			}
			if matches := renameToRegex.FindStringSubmatch(line); matches != nil {
				currentFile.NewPath = matches[1]
				currentFile.IsRenamed = true
				continue
			}
			if binaryFilesRegex.MatchString(line) {
				currentFile.IsBinary = true
				continue
			}
			if newFileModeRegex.MatchString(line) {
				currentFile.IsNew = true
				continue
			}
			if deletedFileModeRegex.MatchString(line) {
				currentFile.IsDeleted = true
				continue
			}
			// Mode changes and index lines are not needed for display.
			if modeRegex.MatchString(line) || indexLineRegex.MatchString(line) {
				continue
			}
		}

		// Hunk header
		if matches := hunkHeaderRegex.FindStringSubmatch(line); matches != nil {
			flushHunk()

			oldStart, err := strconv.Atoi(matches[1])
			if err != nil {
				return nil, fmt.Errorf("invalid old start line in hunk header: %s", line)
			}
			oldCount := 1
			if matches[2] != "" {
				if oldCount, err = strconv.Atoi(matches[2]); err != nil {
					return nil, fmt.Errorf("invalid old count in hunk header: %s", line)
				}
			}
			newStart, err := strconv.Atoi(matches[3])
			if err != nil {
				return nil, fmt.Errorf("invalid new start line in hunk header: %s", line)
			}
			newCount := 1
			if matches[4] != "" {
				if newCount, err = strconv.Atoi(matches[4]); err != nil {
					return nil, fmt.Errorf("invalid new count in hunk header: %s", line)
				}
			}

			currentHunk = &Hunk{
				OldStart: oldStart,
				OldCount: oldCount,
				NewStart: newStart,
				NewCount: newCount,
				Header:   line,
			}
			oldLineNum = oldStart
			newLineNum = newStart
			oldRemain = oldCount
			newRemain = newCount
			continue
		}

		if currentHunk == nil {
			continue
		}

		if len(line) == 0 {
			// Empty line inside a hunk: context with empty content.
			currentHunk.Lines = append(currentHunk.Lines, Line{
				Type:       LineContext,
				OldLineNum: oldLineNum,
				NewLineNum: newLineNum,
			})
			oldLineNum++
			newLineNum++
			oldRemain--
			newRemain--
			closeHunkIfDone()
			continue
		}

		prefix := line[0]
		content := ""
		if len(line) > 1 {
			content = line[1:]
		}

		switch prefix {
		case ' ':
			currentHunk.Lines = append(currentHunk.Lines, Line{
				Type:       LineContext,
				OldLineNum: oldLineNum,
				NewLineNum: newLineNum,
				Content:    content,
			})
			oldLineNum++
			newLineNum++
			oldRemain--
			newRemain--
		case '-':
			currentHunk.Lines = append(currentHunk.Lines, Line{
				Type:       LineRemove,
				OldLineNum: oldLineNum,
				Content:    content,
			})
			currentFile.Deletions++
			oldLineNum++
			oldRemain--
		case '+':
			currentHunk.Lines = append(currentHunk.Lines, Line{
				Type:       LineAdd,
				NewLineNum: newLineNum,
				Content:    content,
			})
			currentFile.Additions++
			newLineNum++
			newRemain--
		case '\\':
			// "\ No newline at end of file" - skip but don't error
			continue
		default:
			// Unknown prefix - could be end of hunk or malformed input.
			continue
		}
		closeHunkIfDone()
	}

	flushFile()

	if len(files) == 0 && strings.TrimSpace(text) != "" {
		return nil, fmt.Errorf("not a unified diff")
	}
	return files, nil
}

// Hunks flattens all files' hunks into one sequence for the row builders.
func Hunks(files []File) []Hunk {
	var hunks []Hunk
	for _, f := range files {
		hunks = append(hunks, f.Hunks...)
	}
	return hunks
}
