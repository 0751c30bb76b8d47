package structure

import "testing"

func h(title string, level, page int) Heading {
	return Heading{Title: title, Level: level, Page: page}
}

func TestBuild_Nesting(t *testing.T) {
	tree := Build([]Heading{
		h("Chapter 1", 1, 1),
		h("Section 1.1", 2, 1),
		h("Section 1.2", 2, 2),
	})

	if len(tree.Sections) != 1 {
		t.Fatalf("expected 1 top-level section, got %d", len(tree.Sections))
	}
	ch := tree.Sections[0]
	if ch.Title != "Chapter 1" {
		t.Errorf("top-level title %q", ch.Title)
	}
	if len(ch.Subsections) != 2 {
		t.Fatalf("expected 2 subsections, got %d", len(ch.Subsections))
	}
	if ch.Subsections[0].Title != "Section 1.1" || ch.Subsections[1].Title != "Section 1.2" {
		t.Errorf("subsections out of order: %q, %q",
			ch.Subsections[0].Title, ch.Subsections[1].Title)
	}
}

func TestBuild_SiblingChaptersClose(t *testing.T) {
	tree := Build([]Heading{
		h("Chapter 1", 1, 1),
		h("Section 1.1", 2, 1),
		h("Chapter 2", 1, 3),
		h("Section 2.1", 2, 3),
	})

	if len(tree.Sections) != 2 {
		t.Fatalf("expected 2 chapters, got %d", len(tree.Sections))
	}
	// Section 2.1 belongs to chapter 2, not chapter 1.
	if n := len(tree.Sections[0].Subsections); n != 1 {
		t.Errorf("chapter 1 has %d subsections", n)
	}
	if n := len(tree.Sections[1].Subsections); n != 1 {
		t.Fatalf("chapter 2 has %d subsections", n)
	}
	if got := tree.Sections[1].Subsections[0].Title; got != "Section 2.1" {
		t.Errorf("chapter 2 child %q", got)
	}
}

func TestBuild_OrphanPromotion(t *testing.T) {
	// An H2 with no preceding H1 becomes a top-level section.
	tree := Build([]Heading{
		h("Orphan", 2, 1),
		h("Chapter 1", 1, 2),
	})

	if len(tree.Sections) != 2 {
		t.Fatalf("expected 2 top-level sections, got %d", len(tree.Sections))
	}
	if tree.Sections[0].Title != "Orphan" || tree.Sections[0].Level != 2 {
		t.Errorf("orphan not promoted: %+v", tree.Sections[0])
	}
}

func TestBuild_DeepAttachment(t *testing.T) {
	// An H3 attaches to the nearest shallower heading, skipping levels.
	tree := Build([]Heading{
		h("Chapter", 1, 1),
		h("Detail", 3, 1),
	})

	ch := tree.Sections[0]
	if len(ch.Subsections) != 1 || ch.Subsections[0].Title != "Detail" {
		t.Fatalf("H3 did not attach under H1: %+v", ch.Subsections)
	}
}

func TestBuild_LevelPopsToSibling(t *testing.T) {
	// After an H3, an H2 closes the H3 and attaches under the open H1.
	tree := Build([]Heading{
		h("Chapter", 1, 1),
		h("Section A", 2, 1),
		h("Detail", 3, 1),
		h("Section B", 2, 2),
	})

	ch := tree.Sections[0]
	if len(ch.Subsections) != 2 {
		t.Fatalf("expected 2 sections under chapter, got %d", len(ch.Subsections))
	}
	if ch.Subsections[1].Title != "Section B" {
		t.Errorf("second section is %q", ch.Subsections[1].Title)
	}
	if len(ch.Subsections[0].Subsections) != 1 {
		t.Errorf("detail not under section A")
	}
}

func TestBuild_IgnoresNonHeadingLevels(t *testing.T) {
	tree := Build([]Heading{
		h("body", 0, 1),
		h("Chapter", 1, 1),
	})
	if tree.Count() != 1 {
		t.Errorf("expected 1 node, got %d", tree.Count())
	}
}

func TestBuild_Empty(t *testing.T) {
	tree := Build(nil)
	if tree == nil || tree.Sections == nil {
		t.Fatal("empty input should yield an empty tree, not nil")
	}
	if len(tree.Sections) != 0 {
		t.Errorf("expected no sections")
	}
}

func TestWalk_PreOrderReproducesStream(t *testing.T) {
	headings := []Heading{
		h("Chapter 1", 1, 1),
		h("Section 1.1", 2, 1),
		h("Detail", 3, 1),
		h("Section 1.2", 2, 2),
		h("Chapter 2", 1, 3),
	}
	tree := Build(headings)

	var titles []string
	tree.Walk(func(n *Node) { titles = append(titles, n.Title) })

	if len(titles) != len(headings) {
		t.Fatalf("walked %d nodes, expected %d", len(titles), len(headings))
	}
	for i, hd := range headings {
		if titles[i] != hd.Title {
			t.Errorf("position %d: %q, expected %q", i, titles[i], hd.Title)
		}
	}
}

func TestCount(t *testing.T) {
	tree := Build([]Heading{
		h("A", 1, 1),
		h("B", 2, 1),
		h("C", 1, 2),
	})
	if tree.Count() != 3 {
		t.Errorf("count %d", tree.Count())
	}
}
