package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// IDLength é o tamanho dos identificadores de dataset
const IDLength = 6

// GenerateID gera um identificador curto e legível para URLs
func GenerateID() (string, error) {
	return gonanoid.Generate(characters, IDLength)
}
