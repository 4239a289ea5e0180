package a

import "regexp"

var targetRe = regexp.MustCompile(`\[ID=(\d+)\]`)

func clean(name string) string {
	re := regexp.MustCompile(`\[ID=(\d+)\]`) // want "regexp.MustCompile called in clean"
	return re.ReplaceAllString(name, "")
}

func cleanAll(names []string) {
	for i, name := range names {
		re, _ := regexp.Compile(`\s+`) // want "regexp.Compile called in cleanAll"
		names[i] = re.ReplaceAllString(name, "")
	}
}

func good(name string) string {
	return targetRe.ReplaceAllString(name, "")
}

func quoted(name string) string {
	return regexp.QuoteMeta(name)
}
