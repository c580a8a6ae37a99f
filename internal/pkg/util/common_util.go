package util

import (
	"regexp"
	"strings"
)

var (
	hashtagRegex = regexp.MustCompile(`#(\S+)`)
	mentionRegex = regexp.MustCompile(`@(\S+)`)
)

const trimChars = ".,，。!?！？:;"

// ExtractHashtags 提取去重后的话题标签
func ExtractHashtags(caption string) []string {
	return extractUnique(hashtagRegex, caption)
}

// ExtractMentions 提取去重后的 @ 账号
func ExtractMentions(caption string) []string {
	return extractUnique(mentionRegex, caption)
}

func extractUnique(re *regexp.Regexp, raw string) []string {
	matches := re.FindAllStringSubmatch(raw, -1)

	seen := make(map[string]struct{})
	result := make([]string, 0, len(matches))

	for _, m := range matches {
		if len(m) < 2 {
			continue
		}
		name := strings.Trim(m[1], trimChars)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, name)
	}

	return result
}

// PtrInt 用于将 int 转换为 *int
func PtrInt(i int) *int {
	return &i
}
