package main

import "github.com/nomoji/nomoji/cmd/nomoji"

func main() { nomoji.Execute() }
