package assets

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestViewContextShouldEnqueue(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		view ViewContext
		want bool
	}{
		{name: "public page", view: ViewContext{}, want: true},
		{name: "public page with toolbar", view: ViewContext{Toolbar: true}, want: true},
		{name: "admin without toolbar", view: ViewContext{Admin: true}, want: false},
		{name: "admin with toolbar", view: ViewContext{Admin: true, Toolbar: true}, want: true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, NewPipeline(tc.view).ShouldEnqueueForCurrentView())
		})
	}
}

func TestPipelineResolvesDependenciesFirst(t *testing.T) {
	t.Parallel()

	p := NewPipeline(ViewContext{})
	p.RegisterStyle("reset", "https://cdn.example.com/reset.css", nil)
	p.RegisterStyle("base", "https://cdn.example.com/base.css", []string{"reset"})
	p.EnqueueStyle("app", "https://example.com/app.css", []string{"base"})
	p.EnqueueStyle("app", "https://example.com/app.css", []string{"base"})

	require.Equal(t, []string{"app"}, p.Enqueued(KindStyle))

	resources, err := p.Resources(KindStyle)
	require.NoError(t, err)
	handles := make([]string, 0, len(resources))
	for _, res := range resources {
		handles = append(handles, res.Handle)
	}
	require.Equal(t, []string{"reset", "base", "app"}, handles)
}

func TestPipelineRegisteredHandles(t *testing.T) {
	t.Parallel()

	p := NewPipeline(ViewContext{})
	p.RegisterScript("jquery", "https://cdn.example.com/jquery.js", nil)
	p.EnqueueRegisteredScript("jquery")
	p.EnqueueScript("slider", "https://example.com/slider.js", []string{"jquery"})

	tags, err := p.Tags()
	require.NoError(t, err)
	require.Equal(t,
		"<script id=\"jquery-js\" src=\"https://cdn.example.com/jquery.js\"></script>\n"+
			"<script id=\"slider-js\" src=\"https://example.com/slider.js\"></script>\n",
		tags)
}

func TestPipelineUnknownHandle(t *testing.T) {
	t.Parallel()

	p := NewPipeline(ViewContext{})
	p.EnqueueRegisteredStyle("dashicons")

	_, err := p.Tags()
	var unknown UnknownHandleError
	require.ErrorAs(t, err, &unknown)
	require.Equal(t, KindStyle, unknown.Kind)
	require.Equal(t, "dashicons", unknown.Handle)
}

func TestPipelineCircularDependency(t *testing.T) {
	t.Parallel()

	p := NewPipeline(ViewContext{})
	p.RegisterScript("a", "a.js", []string{"b"})
	p.EnqueueScript("b", "b.js", []string{"a"})

	_, err := p.Resources(KindScript)
	var cycle CircularDependencyError
	require.ErrorAs(t, err, &cycle)
	require.ElementsMatch(t, []string{"a", "b"}, cycle.Cycle)
	require.Contains(t, err.Error(), "->")
}

func TestPipelineTagsEscape(t *testing.T) {
	t.Parallel()

	p := NewPipeline(ViewContext{})
	p.EnqueueStyle("main", `https://example.com/a.css?x="1"&y=2`, nil)

	tags, err := p.Tags()
	require.NoError(t, err)
	require.Contains(t, tags, `href="https://example.com/a.css?x=&#34;1&#34;&amp;y=2"`)
}
