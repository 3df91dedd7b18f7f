package test

import (
	"math/rand"
	"strings"
)

const validTokens = "if|(|)|{|}|@|=|;|+|-|*|/|>|<|x|second|counter|a1|0|1|19|-3|123456"

const validStatements = "@x = 10;|@second = 20;|x + 1;|x*second + second/x*3;|if (second - 19) { x + 1; }|{ @x = x - 1; }|if (x > 0) x;|if () { }|(x + 1) * -2;"

func GetRandomTokens(size int) string {
	return GetRandomTokensWithSep(size, " ")
}

func GetRandomTokensWithSep(size int, sep string) string {
	return join(strings.Split(validTokens, "|"), size, sep)
}

// GetRandomProgram returns size statements that parse successfully.
func GetRandomProgram(size int) string {
	return join(strings.Split(validStatements, "|"), size, "\n")
}

func join(valid []string, size int, sep string) string {
	var toks []string
	for len(toks) < size {
		toks = append(toks, valid[rand.Intn(len(valid))])
	}

	return strings.Join(toks, sep)
}
