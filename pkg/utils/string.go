package utils

import (
	"math/rand"
	"time"
)

const (
	charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	digits  = "0123456789"
)

var randGenerator = rand.New(rand.NewSource(time.Now().UnixNano()))

func GenerateRandomString(length int) string {
	return pick(charset, length)
}

// RandomPhone returns a US style number such as (555) 123-4567.
func RandomPhone() string {
	return "(" + pick(digits, 3) + ") " + pick(digits, 3) + "-" + pick(digits, 4)
}

func pick(from string, length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = from[randGenerator.Intn(len(from))]
	}
	return string(b)
}
