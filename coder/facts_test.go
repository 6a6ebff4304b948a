package coder

import (
	"errors"
	"testing"

	"htmlcoder/docx"
)

var factStyles = map[string]docx.Style{
	"Title":    {ID: "Title", Bold: ptrBool(true), Align: "center"},
	"NotBold":  {ID: "NotBold", Bold: ptrBool(false)},
	"Strong":   {ID: "Strong", Bold: ptrBool(true), Align: "right"},
	"Quote":    {ID: "Quote", Align: "end"},
	"Plain":    {ID: "Plain"},
	"Centered": {ID: "Centered", Align: "center"},
}

func TestResolveFacts_Presentation(t *testing.T) {
	pref := func(id string) docx.StyleRef { return docx.StyleRef{ID: id, Kind: docx.ParagraphStyle} }
	rref := func(id string) docx.StyleRef { return docx.StyleRef{ID: id, Kind: docx.RunStyle} }

	tests := []struct {
		name      string
		p         docx.Paragraph
		wantBold  bool
		wantAlign string
	}{
		{name: "defaults", p: docx.Paragraph{}, wantBold: false, wantAlign: AlignLeft},
		{name: "style bold and alignment", p: docx.Paragraph{StyleRefs: []docx.StyleRef{pref("Title")}}, wantBold: true, wantAlign: AlignCenter},
		{
			name:      "last style wins",
			p:         docx.Paragraph{StyleRefs: []docx.StyleRef{pref("Title"), rref("NotBold")}},
			wantBold:  false,
			wantAlign: AlignCenter,
		},
		{
			name:      "style without value does not reset",
			p:         docx.Paragraph{StyleRefs: []docx.StyleRef{pref("Title"), rref("Plain")}},
			wantBold:  true,
			wantAlign: AlignCenter,
		},
		{
			name:      "alignment ignores run styles",
			p:         docx.Paragraph{StyleRefs: []docx.StyleRef{rref("Strong")}},
			wantBold:  true,
			wantAlign: AlignLeft,
		},
		{
			name:      "paragraph explicit false wins",
			p:         docx.Paragraph{StyleRefs: []docx.StyleRef{pref("Title")}, Bold: ptrBool(false)},
			wantBold:  false,
			wantAlign: AlignCenter,
		},
		{
			name:      "paragraph wins regardless of order",
			p:         docx.Paragraph{StyleRefs: []docx.StyleRef{rref("NotBold")}, Bold: ptrBool(true), Align: "right"},
			wantBold:  true,
			wantAlign: AlignRight,
		},
		{
			name:      "strict vocabulary",
			p:         docx.Paragraph{StyleRefs: []docx.StyleRef{pref("Quote")}},
			wantAlign: AlignRight,
		},
		{
			name:      "later paragraph style alignment wins",
			p:         docx.Paragraph{StyleRefs: []docx.StyleRef{pref("Quote"), pref("Centered")}},
			wantAlign: AlignCenter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := ResolveFacts(&tt.p, factStyles, testAssets)
			if err != nil {
				t.Fatalf("ResolveFacts() error = %v", err)
			}
			if f.Bold != tt.wantBold {
				t.Errorf("Bold = %v, want %v", f.Bold, tt.wantBold)
			}
			if f.Align != tt.wantAlign {
				t.Errorf("Align = %q, want %q", f.Align, tt.wantAlign)
			}
		})
	}
}

func TestResolveFacts_Images(t *testing.T) {
	tests := []struct {
		name    string
		refs    []string
		wantURL string
		wantErr error
	}{
		{name: "none"},
		{name: "single", refs: []string{"rId2"}, wantURL: testAssets["rId2"].URL},
		{name: "repeated reference", refs: []string{"rId1", "rId1"}, wantURL: testAssets["rId1"].URL},
		{name: "same content", refs: []string{"rId1", "rId1dup", "rId1"}, wantURL: testAssets["rId1"].URL},
		{name: "different content", refs: []string{"rId1", "rId1dup", "rId2"}, wantErr: ErrMultiPictureConflict},
		{name: "unknown reference", refs: []string{"rId9"}, wantErr: ErrUnknownImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := ResolveFacts(&docx.Paragraph{ImageRefs: tt.refs}, nil, testAssets)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ResolveFacts() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveFacts() error = %v", err)
			}
			switch {
			case tt.wantURL == "" && f.Image != nil:
				t.Errorf("Image = %+v, want nil", f.Image)
			case tt.wantURL != "" && (f.Image == nil || f.Image.URL != tt.wantURL):
				t.Errorf("Image = %+v, want %s", f.Image, tt.wantURL)
			}
		})
	}
}

func TestResolveFacts_UnknownStyle(t *testing.T) {
	p := docx.Paragraph{StyleRefs: []docx.StyleRef{{ID: "Missing", Kind: docx.RunStyle}}}
	if _, err := ResolveFacts(&p, factStyles, testAssets); !errors.Is(err, ErrUnknownStyle) {
		t.Errorf("ResolveFacts() error = %v, want %v", err, ErrUnknownStyle)
	}
}

func TestUnknownStyleOnlyMattersForContent(t *testing.T) {
	bad := docx.Paragraph{Text: "outside", StyleRefs: []docx.StyleRef{{ID: "Missing"}}}
	if _, err := run(t, seq(bad, txt("{% body %}"), txt("{% ENDbody %}"))); err != nil {
		t.Errorf("paragraph outside zones failed: %v", err)
	}

	bad.Text = "inside"
	_, err := run(t, seq(txt("{% body %}"), bad, txt("{% ENDbody %}")))
	var pe *ParagraphError
	if !errors.As(err, &pe) || !errors.Is(err, ErrUnknownStyle) || pe.Ordinal != 1 {
		t.Errorf("run() error = %v, want unknown style at paragraph 1", err)
	}
}

func TestReadingTime(t *testing.T) {
	words := []struct{ in, want int }{
		{0, 0}, {299, 0}, {300, 1}, {899, 1}, {900, 2}, {6000, 10},
	}
	for _, tt := range words {
		if got := WordsReadingTime(tt.in); got != tt.want {
			t.Errorf("WordsReadingTime(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}

	pictures := []struct{ in, want int }{
		{0, 3}, {19, 3}, {20, 4}, {29, 4}, {30, 5}, {31, 5}, {50, 5}, {51, 6}, {71, 7},
	}
	for _, tt := range pictures {
		if got := PicturesReadingTime(tt.in); got != tt.want {
			t.Errorf("PicturesReadingTime(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParagraphError(t *testing.T) {
	err := paragraphError(4, "{% ENDbody %}", ErrUnexpectedZoneEnd)
	if got, want := err.Error(), `paragraph 5 "{% ENDbody %}": unexpected zone end`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if got, want := documentError(ErrConflictingCounters).Error(), ErrConflictingCounters.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
