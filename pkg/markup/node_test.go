package markup_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-htmlform/pkg/markup"
)

func TestNodeString_Element(t *testing.T) {
	node := markup.Tag("input").
		SetAttr("type", "text").
		SetAttr("name", "user[name]").
		SetAttr("value", `Tom & "Jerry"`).
		SetAttr("required", true).
		SetAttr("maxlength", 20)

	want := `<input type="text" name="user[name]" value="Tom &amp; &#34;Jerry&#34;" required maxlength="20">`
	if got := node.String(); got != want {
		t.Fatalf("unexpected markup:\nwant %s\ngot  %s", want, got)
	}
}

func TestNodeSetAttr_ReplacesInPlaceAndRemovesFalse(t *testing.T) {
	node := markup.Tag("input").
		SetAttr("type", "checkbox").
		SetAttr("name", "x").
		SetAttr("checked", true).
		SetAttr("type", "radio").
		SetAttr("checked", false).
		SetAttr("disabled", nil)

	got := node.Attrs()
	want := []markup.Attribute{
		{Name: "type", Value: "radio"},
		{Name: "name", Value: "x"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("attrs mismatch (-want +got):\n%s", diff)
	}
	if node.Bool("checked") {
		t.Fatalf("expected checked to be removed")
	}
}

func TestNodeAddClass_MergesAndDeduplicates(t *testing.T) {
	node := markup.Tag("div").SetAttr("class", "a b")
	node.AddClass("b", " c ", "", "a d")

	if got := node.AttrString("class"); got != "a b c d" {
		t.Fatalf("unexpected class list %q", got)
	}
	if !node.HasClass("d") || node.HasClass("e") {
		t.Fatalf("HasClass returned unexpected result for %q", node.AttrString("class"))
	}
}

func TestNodeString_TextIsEscaped(t *testing.T) {
	node := markup.Tag("textarea").SetAttr("name", "bio").Append("<b>hi</b>")

	want := `<textarea name="bio">&lt;b&gt;hi&lt;/b&gt;</textarea>`
	if got := node.String(); got != want {
		t.Fatalf("want %s, got %s", want, got)
	}
	if got := node.TextContent(); got != "<b>hi</b>" {
		t.Fatalf("unexpected text content %q", got)
	}
}

func TestNodeString_FragmentRendersChildrenOnly(t *testing.T) {
	fragment := markup.New().SetAttr("class", "ignored")
	fragment.Append(markup.Tag("div").Append("one"), markup.Tag("div").Append("two"))

	if got := fragment.String(); got != "<div>one</div><div>two</div>" {
		t.Fatalf("unexpected fragment markup %q", got)
	}
	if markup.New().Empty() != true {
		t.Fatalf("expected empty fragment")
	}
	if fragment.Empty() {
		t.Fatalf("expected non-empty fragment")
	}
}

func TestNodeAppendHTML_Sanitizes(t *testing.T) {
	node := markup.Tag("div").AppendHTML(`<strong class="x">ok</strong><script>alert(1)</script>`)

	got := node.String()
	if strings.Contains(got, "script") {
		t.Fatalf("expected script to be stripped, got %s", got)
	}
	if !strings.Contains(got, `<strong class="x">ok</strong>`) {
		t.Fatalf("expected trusted markup to survive, got %s", got)
	}
}

func TestNodeWriteTo(t *testing.T) {
	var buf bytes.Buffer
	n, err := markup.Tag("option").SetAttr("value", 1.5).Append("one and a half").WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	want := `<option value="1.5">one and a half</option>`
	if buf.String() != want || int(n) != len(want) {
		t.Fatalf("unexpected output %q (%d bytes)", buf.String(), n)
	}
}

func TestJoin(t *testing.T) {
	nodes := []*markup.Node{markup.Text("a"), nil, markup.Tag("br")}
	if got := markup.Join(nodes); got != "a<br>" {
		t.Fatalf("unexpected join %q", got)
	}
}
