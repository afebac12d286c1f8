package productform

import "strings"

// TagList is an ordered set of tags. Uniqueness is exact and case-sensitive.
type TagList struct {
	tags []string
}

func NewTagList(tags ...string) *TagList {
	l := &TagList{tags: []string{}}
	for _, t := range tags {
		l.Add(t)
	}
	return l
}

// Add appends the trimmed tag unless it is empty or already present.
func (l *TagList) Add(tag string) bool {
	tag = strings.TrimSpace(tag)
	if tag == "" || l.Contains(tag) {
		return false
	}
	l.tags = append(l.tags, tag)
	return true
}

// Remove drops the first entry equal to tag.
func (l *TagList) Remove(tag string) {
	for i, t := range l.tags {
		if t == tag {
			l.tags = append(l.tags[:i], l.tags[i+1:]...)
			return
		}
	}
}

func (l *TagList) Contains(tag string) bool {
	for _, t := range l.tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (l *TagList) Values() []string {
	return append([]string{}, l.tags...)
}

func (l *TagList) Len() int {
	return len(l.tags)
}
