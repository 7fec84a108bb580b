// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ux

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePersonalityLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected PersonalityLevel
	}{
		{"full", PersonalityFull},
		{"f", PersonalityFull},
		{"standard", PersonalityStandard},
		{"std", PersonalityStandard},
		{"minimal", PersonalityMinimal},
		{"min", PersonalityMinimal},
		{"machine", PersonalityMachine},
		{"quiet", PersonalityMachine},
		{"MACHINE", PersonalityMachine},
		{"", PersonalityStandard},
		{"bogus", PersonalityStandard},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParsePersonalityLevel(tt.input))
		})
	}
}

func TestSetAndGetPersonality(t *testing.T) {
	original := GetPersonality()
	defer SetPersonality(original)

	SetPersonality(Personality{Level: PersonalityMinimal, ShowHints: false})
	p := GetPersonality()
	assert.Equal(t, PersonalityMinimal, p.Level)
	assert.False(t, p.ShowHints)

	SetPersonalityLevel(PersonalityMachine)
	assert.Equal(t, PersonalityMachine, GetPersonality().Level)
}

func TestDefaultPersonality(t *testing.T) {
	p := DefaultPersonality()
	assert.Equal(t, PersonalityFull, p.Level)
	assert.True(t, p.ShowHints)
}

func TestShouldShowProgress(t *testing.T) {
	original := GetPersonality()
	defer SetPersonality(original)

	SetPersonalityLevel(PersonalityMachine)
	assert.False(t, ShouldShowProgress())

	SetPersonalityLevel(PersonalityFull)
	assert.True(t, ShouldShowProgress())
}
