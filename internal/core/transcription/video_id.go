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

package transcription

import "regexp"

// Platforms an inspiration video can come from.
const (
	PlatformYouTube  = "youtube"
	PlatformFacebook = "facebook"
)

var (
	youtubePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/)([\w-]+)`),
		regexp.MustCompile(`youtube\.com/embed/([\w-]+)`),
		regexp.MustCompile(`youtube\.com/v/([\w-]+)`),
	}
	facebookPatterns = []*regexp.Regexp{
		regexp.MustCompile(`facebook\.com/.*/videos/(\d+)`),
		regexp.MustCompile(`fb\.watch/([\w-]+)`),
	}
)

// VideoRef identifies a video on its platform.
type VideoRef struct {
	Platform string
	ID       string
	URL      string
}

func firstMatch(patterns []*regexp.Regexp, url string) (string, bool) {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(url); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// ExtractVideoID recognizes YouTube and Facebook video URLs.
func ExtractVideoID(url string) (VideoRef, bool) {
	if id, ok := firstMatch(youtubePatterns, url); ok {
		return VideoRef{Platform: PlatformYouTube, ID: id, URL: url}, true
	}
	if id, ok := firstMatch(facebookPatterns, url); ok {
		return VideoRef{Platform: PlatformFacebook, ID: id, URL: url}, true
	}
	return VideoRef{}, false
}
