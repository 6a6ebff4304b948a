package coder

import "fmt"

// Zone is a named region of the source document processed by a dedicated
// content handler.
type Zone int

const (
	ZoneIgnore Zone = iota
	ZoneReporter
	ZoneBody
	ZoneEnding
	ZoneEditorNote
	ZoneReporterNote
	ZoneReference

	zoneCount
)

var zoneNames = [zoneCount]string{
	ZoneIgnore:       "ignore",
	ZoneReporter:     "reporter",
	ZoneBody:         "body",
	ZoneEnding:       "ending",
	ZoneEditorNote:   "editornote",
	ZoneReporterNote: "reporternote",
	ZoneReference:    "reference",
}

// ParseZone returns zone by its marker name. Names are case sensitive.
func ParseZone(name string) (Zone, bool) {
	for z, n := range zoneNames {
		if n == name {
			return Zone(z), true
		}
	}
	return 0, false
}

func (z Zone) String() string {
	if z < 0 || z >= zoneCount {
		return fmt.Sprintf("Zone(%d)", int(z))
	}
	return zoneNames[z]
}

// ZoneNames returns all marker names in declaration order.
func ZoneNames() []string {
	return zoneNames[:]
}

// frame is an open zone on the stack, at is index of the opening marker
// paragraph.
type frame struct {
	zone Zone
	at   int
}

// zoneStack is owned by a single traversal.
type zoneStack []frame

func (s zoneStack) empty() bool {
	return len(s) == 0
}

func (s zoneStack) top() (frame, bool) {
	if len(s) == 0 {
		return frame{}, false
	}
	return s[len(s)-1], true
}

func (s *zoneStack) push(z Zone, at int) {
	*s = append(*s, frame{zone: z, at: at})
}

func (s *zoneStack) pop() frame {
	f := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return f
}
