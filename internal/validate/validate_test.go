package validate

import "testing"

func TestEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last@sub.domain.org",
		"x@y.z",
	}
	for _, s := range valid {
		if !Email(s) {
			t.Fatalf("Email(%q) = false, want true", s)
		}
	}

	invalid := []string{
		"",
		"plainaddress",
		"missing-at.example.com",
		"user@nodot",
		"@example.com",
		"user@.",
	}
	for _, s := range invalid {
		if Email(s) {
			t.Fatalf("Email(%q) = true, want false", s)
		}
	}
}

func TestName(t *testing.T) {
	valid := []string{"Alice", "Mary Jane", "O'Brien", "J. R", "d'Arcy"}
	for _, s := range valid {
		if !Name(s) {
			t.Fatalf("Name(%q) = false, want true", s)
		}
	}

	invalid := []string{"", "'Bob", " Alice", "Al!ce", "-Dash"}
	for _, s := range invalid {
		if Name(s) {
			t.Fatalf("Name(%q) = true, want false", s)
		}
	}
}

func TestPhoneNum(t *testing.T) {
	valid := []string{
		"+1 (555) 123-4567",
		"0712345678",
		"555.123.4567",
	}
	for _, s := range valid {
		if !PhoneNum(s) {
			t.Fatalf("PhoneNum(%q) = false, want true", s)
		}
	}

	invalid := []string{
		"",
		"12345",          // too short
		"555-1234-ABC",   // letters
		"+1 (555) 12345-", // does not end in three digits
	}
	for _, s := range invalid {
		if PhoneNum(s) {
			t.Fatalf("PhoneNum(%q) = true, want false", s)
		}
	}
}

func TestSSN(t *testing.T) {
	valid := []string{"123-45-6789", "123456789", "123-456789", "12345-6789"}
	for _, s := range valid {
		if !SSN(s) {
			t.Fatalf("SSN(%q) = false, want true", s)
		}
	}

	invalid := []string{"", "12-345-6789", "1234567890", "123-45-678"}
	for _, s := range invalid {
		if SSN(s) {
			t.Fatalf("SSN(%q) = true, want false", s)
		}
	}
}

func TestPassword(t *testing.T) {
	valid := []string{
		"Abcdefg1!",
		"xY3;klmnop",
		"PA55word_",
	}
	for _, s := range valid {
		if !Password(s) {
			t.Fatalf("Password(%q) = false, want true", s)
		}
	}

	invalid := []string{
		"",
		"Abcdefg1",  // no symbol
		"abcdefg1!", // no uppercase
		"ABCDEFG1!", // no lowercase
		"Abcdefgh!", // no digit
		"Ab1!",      // too short
	}
	for _, s := range invalid {
		if Password(s) {
			t.Fatalf("Password(%q) = true, want false", s)
		}
	}
}

func TestSlug(t *testing.T) {
	valid := []string{"about", "about-us", "page-2-draft", "A1-b2"}
	for _, s := range valid {
		if !Slug(s) {
			t.Fatalf("Slug(%q) = false, want true", s)
		}
	}

	invalid := []string{"", "-lead", "trail-", "double--dash", "with space", "under_score"}
	for _, s := range invalid {
		if Slug(s) {
			t.Fatalf("Slug(%q) = true, want false", s)
		}
	}

	// Code shares the slug rule.
	if !Code("welcome-email") || Code("welcome--email") {
		t.Fatal("Code should follow the slug rule")
	}
}
