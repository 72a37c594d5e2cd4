package main

import "strings"

func formatGenres(genres []string) string {
	if len(genres) == 0 {
		return "-"
	}
	return strings.Join(genres, ", ")
}
