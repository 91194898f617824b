// Copyright 2024 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package agents_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/jaycherian/gcp-go-script-generation/internal/cloud"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/agents"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/model"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/prompts"
	test "github.com/jaycherian/gcp-go-script-generation/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	var nilString *string
	cases := []struct {
		name     string
		template string
		values   agents.Values
		want     string
	}{
		{"substitutes", "Hello {name}, {count} items", agents.Values{"name": "Ada", "count": 3}, "Hello Ada, 3 items"},
		{"missing placeholders render empty", "a={a} b={b}", nil, "a= b="},
		{"nil renders empty", "[{a}][{b}]", agents.Values{"a": nil, "b": nilString}, "[][]"},
		{"escaped braces", "{{literal}} {x}", agents.Values{"x": "y"}, "{literal} y"},
		{"format spec ignored", "{x:>10}!{x!r}", agents.Values{"x": "v"}, "v!v"},
		{"non identifier copied", "json {\"k\": 1} {0}", agents.Values{}, "json {\"k\": 1} {0}"},
		{"unterminated", "tail {open", agents.Values{"open": "x"}, "tail {open"},
		{"stray closing brace", "a } b", nil, "a } b"},
		{"float", "{t}", agents.Values{"t": 0.7}, "0.7"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, agents.Format(c.template, c.values))
		})
	}
}

func TestFormatNilEqualsEmptyString(t *testing.T) {
	template := "<{value}>"
	assert.Equal(t,
		agents.Format(template, agents.Values{"value": ""}),
		agents.Format(template, agents.Values{"value": nil}))
}

func TestPreciseDelta(t *testing.T) {
	assert.Equal(t, "0 seconds", agents.PreciseDelta(0))
	assert.Equal(t, "1 second", agents.PreciseDelta(1))
	assert.Equal(t, "30 seconds", agents.PreciseDelta(30))
	assert.Equal(t, "1 minute", agents.PreciseDelta(60))
	assert.Equal(t, "1 minute and 30 seconds", agents.PreciseDelta(90))
	assert.Equal(t, "2 hours", agents.PreciseDelta(7200))
	assert.Equal(t, "1 hour, 2 minutes and 5 seconds", agents.PreciseDelta(3725))
	assert.Equal(t, "1 day and 1 second", agents.PreciseDelta(86401))
}

func TestDurationPhrase(t *testing.T) {
	phrase, ok := agents.DurationPhrase(90)
	require.True(t, ok)
	assert.Equal(t, "Important: the duration should be approximately 1 minute and 30 seconds", phrase)

	phrase, ok = agents.DurationPhrase(59.6)
	require.True(t, ok)
	assert.True(t, strings.HasSuffix(phrase, "approximately 1 minute"))

	phrase, ok = agents.DurationPhrase("45")
	require.True(t, ok)
	assert.True(t, strings.HasSuffix(phrase, "approximately 45 seconds"))

	_, ok = agents.DurationPhrase("about a minute")
	assert.False(t, ok)
}

func newGenerator(replies map[string]string) (*agents.Generator, *test.ScriptedModel) {
	llm := test.NewScriptedModel(replies)
	return agents.NewGenerator(test.SeededStore(), llm), llm
}

func TestGenerateWithoutModelIsConfigurationError(t *testing.T) {
	g := agents.NewGenerator(test.SeededStore(), nil)
	_, err := agents.GenerateTitle(context.Background(), g, "d", "storytelling", "casual", "en")
	assert.True(t, model.IsConfigurationError(err))

	llm := test.NewScriptedModel(nil)
	llm.Unavailable = true
	g = agents.NewGenerator(test.SeededStore(), llm)
	_, err = agents.GenerateTitle(context.Background(), g, "d", "storytelling", "casual", "en")
	assert.True(t, model.IsConfigurationError(err))
	assert.Empty(t, llm.Requests())
}

func TestGenerateFallsBackToEnglish(t *testing.T) {
	g, llm := newGenerator(map[string]string{"KEYWORDS": "a, b"})

	out, err := agents.GenerateKeywords(context.Background(), g, "T", "script", "desc", "educational", "de")
	require.NoError(t, err)
	assert.Equal(t, "a, b", out)

	req, ok := llm.Request("KEYWORDS")
	require.True(t, ok)
	assert.Equal(t, agents.SystemMessage, req.System)
}

func TestGenerateUsesLocalizedTemplate(t *testing.T) {
	g, llm := newGenerator(map[string]string{"TITRE": "Un titre"})

	out, err := agents.GenerateTitle(context.Background(), g, "desc", "storytelling", "casual", "fr")
	require.NoError(t, err)
	assert.Equal(t, "Un titre", out)
	_, ok := llm.Request("TITRE")
	assert.True(t, ok)
}

func TestGenerateTemplateNotFound(t *testing.T) {
	llm := test.NewScriptedModel(nil)
	g := agents.NewGenerator(prompts.NewMemoryStore(), llm)

	_, err := agents.GenerateTitle(context.Background(), g, "d", "storytelling", "casual", "fr")
	require.Error(t, err)
	assert.True(t, model.IsTemplateNotFoundError(err))
	assert.Equal(t, "Prompt 'title_prompt' not found in database for any language", err.Error())
	assert.Empty(t, llm.Requests())
}

func TestGenerateWrapsUpstreamFailure(t *testing.T) {
	g, llm := newGenerator(nil)
	llm.Errors["TITLE"] = errors.New("503 from provider")

	_, err := agents.GenerateTitle(context.Background(), g, "d", "storytelling", "casual", "en")
	require.Error(t, err)
	assert.True(t, model.IsUpstreamCallError(err))
	assert.Contains(t, err.Error(), "503 from provider")
	assert.Len(t, llm.Requests(), 1)
}

func TestGenerateTitleStripsQuotes(t *testing.T) {
	for raw, want := range map[string]string{
		`"The Best Title"`:     "The Best Title",
		`  'Single quoted'  `:  "Single quoted",
		`"'Both kinds'"`:       "Both kinds",
		"Plain title\n":        "Plain title",
	} {
		g, _ := newGenerator(map[string]string{"TITLE": raw})
		out, err := agents.GenerateTitle(context.Background(), g, "d", "storytelling", "casual", "en")
		require.NoError(t, err)
		assert.Equal(t, want, out, "raw %q", raw)
	}
}

func TestGenerateTitleSendsSettings(t *testing.T) {
	g, llm := newGenerator(map[string]string{"TITLE": "x"})
	_, err := agents.GenerateTitle(context.Background(), g, "a cat video", "storytelling", "comedic", "en")
	require.NoError(t, err)

	req, _ := llm.Request("TITLE")
	assert.Equal(t, "TITLE description=a cat video use_case=storytelling style=comedic", req.User)
	assert.Equal(t, 0.8, req.Temperature)
	assert.Equal(t, 100, req.MaxTokens)
}

func TestGenerateSectionsSingle(t *testing.T) {
	g, llm := newGenerator(map[string]string{"SINGLE": "\n  The whole script. ---SECTION--- still one  \n"})

	result, err := agents.GenerateSections(context.Background(), g, agents.SectionsInput{
		Description: "d", UseCase: "storytelling", Style: "casual", Language: "en", NbSection: 1,
	})
	require.NoError(t, err)
	require.Len(t, result.Sections, 1)
	assert.Equal(t, "The whole script. ---SECTION--- still one", result.Sections[0])
	assert.Equal(t, result.Sections[0], result.ScriptText)

	req, _ := llm.Request("SINGLE")
	assert.Contains(t, req.User, "duration=Important: the duration should be approximately 30 seconds")
	assert.Contains(t, req.User, "inspiration="+agents.NoInspirationProvided)
	assert.Equal(t, 0.7, req.Temperature)
	assert.Equal(t, 2000, req.MaxTokens)
}

func TestGenerateSectionsMultiple(t *testing.T) {
	raw := "Intro part\n---SECTION---\n Middle part \n---SECTION---\nFinal part\n"
	g, llm := newGenerator(map[string]string{"MULTIPLE": raw})

	result, err := agents.GenerateSections(context.Background(), g, agents.SectionsInput{
		Description: "d", Language: "en", NbSection: 3, Duration: 90, Inspiration: "seen before",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Intro part", "Middle part", "Final part"}, result.Sections)
	assert.Equal(t, "Intro part\n\nMiddle part\n\nFinal part", result.ScriptText)

	req, _ := llm.Request("MULTIPLE")
	assert.Contains(t, req.User, "nb=3")
	assert.Contains(t, req.User, "approximately 1 minute and 30 seconds")
	assert.Contains(t, req.User, "inspiration=seen before")
}

func TestSplitSections(t *testing.T) {
	result := agents.SplitSections("no delimiter at all", 3)
	assert.Equal(t, []string{"no delimiter at all"}, result.Sections)

	result = agents.SplitSections("a---SECTION---   ---SECTION---b", 3)
	assert.Equal(t, []string{"a", "b"}, result.Sections)
	assert.Equal(t, "a\n\nb", result.ScriptText)
}

func TestGenerateDescriptionTruncatesScript(t *testing.T) {
	g, llm := newGenerator(map[string]string{"DESCRIPTION": " A description. "})
	script := strings.Repeat("é", 1200)

	out, err := agents.GenerateDescription(context.Background(), g, "T", script, "", "educational", "en")
	require.NoError(t, err)
	assert.Equal(t, "A description.", out)

	req, _ := llm.Request("DESCRIPTION")
	assert.Contains(t, req.User, "script="+strings.Repeat("é", 1000)+"... keywords=")
	assert.Contains(t, req.User, "keywords="+agents.DefaultKeywords)
	assert.Equal(t, 500, req.MaxTokens)
}

func TestGenerateKeywordsPreviews(t *testing.T) {
	g, llm := newGenerator(map[string]string{"KEYWORDS": "k1, k2"})
	script := strings.Repeat("s", 1001)
	description := strings.Repeat("d", 500)

	_, err := agents.GenerateKeywords(context.Background(), g, "T", script, description, "tutorial", "en")
	require.NoError(t, err)

	req, _ := llm.Request("KEYWORDS")
	assert.Contains(t, req.User, "script="+strings.Repeat("s", 1000)+"... ")
	assert.Contains(t, req.User, "description="+description+" use_case=tutorial")
	assert.Equal(t, 0.6, req.Temperature)
	assert.Equal(t, 200, req.MaxTokens)
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "abc", agents.Preview("abc", 3))
	assert.Equal(t, "ab...", agents.Preview("abc", 2))
}

func TestBuildContextLifeLesson(t *testing.T) {
	short := agents.BuildContext(agents.ContextualInput{Title: "T", TypeVideo: model.VideoTypeLifeLesson, Duration: 120})
	assert.Contains(t, short, "The video is expected to be around 120 seconds long.")
	assert.Contains(t, short, "Emphasize conciseness and a format suitable for a short video.")
	assert.NotContains(t, short, "Allow for more detailed storytelling")

	long := agents.BuildContext(agents.ContextualInput{Title: "T", TypeVideo: model.VideoTypeLifeLesson, Duration: 300})
	assert.Contains(t, long, "Allow for more detailed storytelling suitable for a longer video.")
	assert.NotContains(t, long, "Emphasize conciseness")

	edge := agents.BuildContext(agents.ContextualInput{Title: "T", TypeVideo: model.VideoTypeLifeLesson, Duration: 240})
	assert.Contains(t, edge, "Emphasize conciseness")
}

func TestBuildContextParts(t *testing.T) {
	got := agents.BuildContext(agents.ContextualInput{
		Title:       "Morning habits",
		Description: "wake early",
		Inspiration: "transcript",
		TypeVideo:   model.VideoTypeStoicism,
		Duration:    60,
	})
	assert.Equal(t, "Title of the video project: Morning habits. "+
		"Here is some existing description or context: wake early. "+
		"Consider the following content from inspiration videos: transcript. "+
		"The script should explore stoic principles and offer practical applications for modern life.", got)

	things := agents.BuildContext(agents.ContextualInput{Title: "T", TypeVideo: model.VideoTypeXThingsToDo, Duration: 45})
	assert.True(t, strings.HasSuffix(things, "The video is expected to be around 45 seconds long."))

	bare := agents.BuildContext(agents.ContextualInput{Title: "T", TypeVideo: model.VideoTypeXThingsToDo})
	assert.NotContains(t, bare, "expected to be around")
}

func TestGenerateContextualDescription(t *testing.T) {
	g, llm := newGenerator(map[string]string{"STOICISM": "A stoic take."})

	out, err := agents.GenerateContextualDescription(context.Background(), g, agents.ContextualInput{
		Title: "T", TypeVideo: model.VideoTypeStoicism, Language: "es",
	})
	require.NoError(t, err)
	assert.Equal(t, "A stoic take.", out)

	req, _ := llm.Request("STOICISM")
	assert.Equal(t, "STOICISM Title of the video project: T. "+
		"The script should explore stoic principles and offer practical applications for modern life.", req.User)
	assert.Equal(t, 1500, req.MaxTokens)
	assert.Equal(t, "contextual_description_x_things_to_do", agents.ContextualSettings(model.VideoTypeXThingsToDo).PromptName)
}

func TestGeneratorSharedAcrossRequests(t *testing.T) {
	const workers = 50
	store := test.SeededStore()
	llm := test.NewScriptedModel(map[string]string{
		"TITLE":    `"Shared title"`,
		"MULTIPLE": "one ---SECTION--- two",
	})
	g := agents.NewGenerator(store, cloud.NewQuotaAwareModel(llm, 1000))

	ctx := context.Background()
	var wg sync.WaitGroup
	errs := make(chan error, 2*workers)
	for i := 0; i < workers; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			title, err := agents.GenerateTitle(ctx, g, fmt.Sprintf("description %d", i), "storytelling", "casual", "en")
			if err == nil && title != "Shared title" {
				err = fmt.Errorf("unexpected title %q", title)
			}
			errs <- err
		}()
		go func() {
			defer wg.Done()
			result, err := agents.GenerateSections(ctx, g, agents.SectionsInput{
				Description: fmt.Sprintf("sections %d", i), Language: "en", NbSection: 2, Duration: 60 + i,
			})
			if err == nil && len(result.Sections) != 2 {
				err = fmt.Errorf("unexpected sections %v", result.Sections)
			}
			errs <- err
		}()
	}
	// templates can be upserted while requests are being served
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < workers; i++ {
			store.Put(prompts.Key{Name: "keywords_prompt", Language: "fr"}, fmt.Sprintf("MOTS-CLES %d {title}", i))
		}
	}()
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Len(t, llm.Requests(), 2*workers)
	for i := 0; i < workers; i++ {
		_, ok := llm.Request(fmt.Sprintf("TITLE description=description %d ", i))
		assert.True(t, ok, "title request %d", i)
		_, ok = llm.Request(fmt.Sprintf("MULTIPLE nb=2 description=sections %d ", i))
		assert.True(t, ok, "sections request %d", i)
	}
}
