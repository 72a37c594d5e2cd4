// Command gamebot manages a local catalog of a Steam library: refreshing
// cached game metadata, searching it by name, and recommending games by genre.
package main
