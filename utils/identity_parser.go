package utils

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/janseva-labs/aadhaar-form-assist/dto"
)

// ErrNameNotFound is returned when no usable name can be derived from the
// recognized text. The name is the only attribute whose absence makes the
// record unusable; everything else degrades to an empty string.
var ErrNameNotFound = errors.New("no usable name found in recognized text")

// Extraction thresholds. The word-level pass keeps words at or above
// wordConfidenceCutoff; words whose vertical positions differ by no more than
// lineTolerancePx are treated as the same text line.
const (
	wordConfidenceCutoff = 0.40
	lineTolerancePx      = 10
	maxWordGapPx         = 100
)

// ParseIdentity extracts a structured identity record from OCR output of an
// Aadhaar card. Each attribute is derived by an ordered chain of independent
// heuristics; the first one that produces a value wins.
func ParseIdentity(doc dto.RecognizedDocument) (dto.IdentityRecord, error) {
	rec := dto.IdentityRecord{
		FatherName: extractFatherName(doc.FullText),
		DOB:        extractDOB(doc.FullText),
		Gender:     extractGender(doc),
		IDNumber:   extractIDNumber(doc.FullText),
		Address:    extractAddress(doc.FullText),
		Source:     "ocr",
	}

	for _, strategy := range nameStrategies {
		if name, ok := strategy(doc); ok {
			rec.Name = name
			break
		}
	}
	if rec.Name == "" {
		rec.Name = nameFromStrictLines(doc)
	}
	if len(rec.Name) < 2 {
		return dto.IdentityRecord{}, fmt.Errorf("parse identity: %w", ErrNameNotFound)
	}

	return rec, nil
}

// ---------------- Name ----------------

type nameStrategy func(dto.RecognizedDocument) (string, bool)

var nameStrategies = []nameStrategy{
	nameFromKeyword,
	nameFromEarlyLines,
	nameFromWords,
	nameFromLayoutPatterns,
}

var nameKeywordRe = regexp.MustCompile(`(?i)(?:name|नाम)\s*[:\-]?\s*([A-Za-z][A-Za-z ]{1,39})`)

// nameFromKeyword looks for an explicit "Name:" label.
func nameFromKeyword(doc dto.RecognizedDocument) (string, bool) {
	m := nameKeywordRe.FindStringSubmatch(doc.FullText)
	if len(m) < 2 {
		return "", false
	}
	name := CleanAndValidateName(cutAtPersonalData(m[1]))
	return name, len(name) > 2
}

// nameFromEarlyLines scans the first few text lines; the holder's name is
// printed near the top of the card, under the Government of India header.
func nameFromEarlyLines(doc dto.RecognizedDocument) (string, bool) {
	lines := nonEmptyLines(doc)
	for i := 0; i < len(lines) && i < 5; i++ {
		if !isLikelyNameLine(lines[i]) {
			continue
		}
		name := CleanAndValidateName(lines[i])
		if len(name) > 2 {
			return name, true
		}
	}
	return "", false
}

// nameFromWords reconstructs the name from word-level OCR output: keep
// confident alphabetic capitalized words, order them by position, merge words
// on the same visual line, and take the longest sequence of 1-4 words.
func nameFromWords(doc dto.RecognizedDocument) (string, bool) {
	var cand []dto.Word
	for _, w := range doc.Words {
		if w.Confidence < wordConfidenceCutoff {
			continue
		}
		if len(w.Text) < 2 || !alphaRe.MatchString(w.Text) {
			continue
		}
		if w.Text[0] < 'A' || w.Text[0] > 'Z' {
			continue
		}
		if isNonNameWord(w.Text) {
			continue
		}
		cand = append(cand, w)
	}
	if len(cand) == 0 {
		return "", false
	}

	sort.SliceStable(cand, func(i, j int) bool {
		if abs(cand[i].BBox.Y0-cand[j].BBox.Y0) > lineTolerancePx {
			return cand[i].BBox.Y0 < cand[j].BBox.Y0
		}
		return cand[i].BBox.X0 < cand[j].BBox.X0
	})

	var best, cur []dto.Word
	for i, w := range cand {
		if i > 0 {
			prev := cand[i-1]
			sameLine := abs(w.BBox.Y0-prev.BBox.Y0) <= lineTolerancePx
			closeGap := w.BBox.X0-prev.BBox.X1 <= maxWordGapPx
			if sameLine && closeGap {
				cur = append(cur, w)
				continue
			}
			if betterSequence(cur, best) {
				best = cur
			}
		}
		cur = []dto.Word{w}
	}
	if betterSequence(cur, best) {
		best = cur
	}

	if len(best) == 0 {
		return "", false
	}
	parts := make([]string, len(best))
	for i, w := range best {
		parts[i] = w.Text
	}
	name := CleanAndValidateName(strings.Join(parts, " "))
	return name, len(name) > 2
}

// betterSequence reports whether cur is a valid 1-4 word name sequence longer
// than the best one seen so far.
func betterSequence(cur, best []dto.Word) bool {
	if len(cur) == 0 || len(cur) > 4 {
		return false
	}
	return sequenceLen(cur) > sequenceLen(best)
}

func sequenceLen(words []dto.Word) int {
	n := 0
	for _, w := range words {
		n += len(w.Text) + 1
	}
	return n
}

var layoutNameRes = []*regexp.Regexp{
	// "Ravi Kumar S/O ..." relation markers
	regexp.MustCompile(`([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\s*(?i:[sdw]/o)`),
	// first capitalized words after the card header
	regexp.MustCompile(`(?s)Government\s+of\s+India.*?([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`),
	regexp.MustCompile(`([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\s*(?:Father|पिता)`),
}

// nameFromLayoutPatterns matches capitalized-word runs adjacent to known
// layout anchors (relation markers, the Government of India header).
func nameFromLayoutPatterns(doc dto.RecognizedDocument) (string, bool) {
	for _, re := range layoutNameRes {
		m := re.FindStringSubmatch(doc.FullText)
		if len(m) < 2 {
			continue
		}
		name := CleanAndValidateName(m[1])
		if len(name) > 2 {
			return name, true
		}
	}
	return "", false
}

var strictNameLineRe = regexp.MustCompile(`^[A-Z][a-z]+(?: [A-Z][a-z]+)*$`)

// nameFromStrictLines is the last resort: any line that is exactly a run of
// capitalized words and contains no known non-name keyword.
func nameFromStrictLines(doc dto.RecognizedDocument) string {
	for _, line := range nonEmptyLines(doc) {
		if !strictNameLineRe.MatchString(line) || containsNonNameKeyword(line) {
			continue
		}
		if name := CleanAndValidateName(line); len(name) > 2 {
			return name
		}
	}
	return ""
}

var (
	alphaRe     = regexp.MustCompile(`^[A-Za-z]+$`)
	alphaWordRe = regexp.MustCompile(`^[A-Za-z ]+$`)
	punctRe     = regexp.MustCompile(`[^\w\s]`)
	spaceRe     = regexp.MustCompile(`\s+`)
)

// CleanAndValidateName normalizes a raw name candidate: punctuation stripped,
// whitespace collapsed, tokens shorter than 2 characters or containing
// non-letters dropped, remaining tokens title-cased. Returns "" when the
// result is not a plausible name (2-50 characters, letters and spaces only).
func CleanAndValidateName(raw string) string {
	if raw == "" {
		return ""
	}
	cleaned := punctRe.ReplaceAllString(raw, " ")
	cleaned = spaceRe.ReplaceAllString(cleaned, " ")

	var tokens []string
	for _, tok := range strings.Fields(cleaned) {
		if len(tok) < 2 || !alphaRe.MatchString(tok) {
			continue
		}
		tokens = append(tokens, strings.ToUpper(tok[:1])+strings.ToLower(tok[1:]))
	}
	name := strings.Join(tokens, " ")

	if len(name) < 2 || len(name) > 50 || !alphaWordRe.MatchString(name) {
		return ""
	}
	return name
}

// nonNameWords are tokens that appear on Aadhaar cards but never inside a
// holder's name, in both supported languages.
var nonNameWords = map[string]bool{
	"government": true, "india": true, "aadhaar": true, "aadhar": true,
	"card": true, "male": true, "female": true, "dob": true, "birth": true,
	"address": true, "pin": true, "code": true, "unique": true,
	"identification": true, "authority": true, "gender": true, "year": true,
	"भारत": true, "सरकार": true, "आधार": true,
}

func isNonNameWord(word string) bool {
	return nonNameWords[strings.ToLower(word)]
}

func containsNonNameKeyword(line string) bool {
	for _, tok := range strings.Fields(strings.ToLower(line)) {
		if nonNameWords[tok] {
			return true
		}
	}
	return false
}

func isLikelyNameLine(line string) bool {
	line = strings.TrimSpace(line)
	if len(line) <= 2 || len(line) >= 50 {
		return false
	}
	if !alphaWordRe.MatchString(line) {
		return false
	}
	return !containsNonNameKeyword(line)
}

// personalDataKeywords end a captured name run; OCR frequently glues the name
// and the following label onto one line.
var personalDataRe = regexp.MustCompile(`(?i)\b(?:dob|date of birth|gender|male|female)\b`)

func cutAtPersonalData(s string) string {
	if loc := personalDataRe.FindStringIndex(s); loc != nil {
		return s[:loc[0]]
	}
	return s
}

// ---------------- Father's name ----------------

var fatherRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)father(?:'?s)?\s*name\s*[:\-]?\s*([A-Za-z][A-Za-z ]{1,39})`),
	regexp.MustCompile(`(?i)\b(?:father|guardian|parent|son\s+of|[sdw]/o)\b\s*[:\-]?\s*([A-Za-z][A-Za-z ]{1,39})`),
	regexp.MustCompile(`(?:पिता|अभिभावक)\s*[:\-]?\s*([A-Za-z][A-Za-z ]{1,39})`),
}

func extractFatherName(text string) string {
	for _, re := range fatherRes {
		m := re.FindStringSubmatch(text)
		if len(m) < 2 {
			continue
		}
		name := CleanAndValidateName(cutAtPersonalData(m[1]))
		if len(name) > 2 {
			return name
		}
	}
	return ""
}

// ---------------- Date of birth ----------------

var dobKeywordRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:dob|date\s+of\s+birth|birth|जन्म)\s*[:\-]?\s*(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{4})`),
	regexp.MustCompile(`(?i)(?:dob|date\s+of\s+birth|birth|जन्म)\s*[:\-]?\s*(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2})\b`),
}

var dobBareRes = []*regexp.Regexp{
	regexp.MustCompile(`\b(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{4})\b`),
	regexp.MustCompile(`\b(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2})\b`),
}

func extractDOB(text string) string {
	for _, re := range dobKeywordRes {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if isValidDate(m[1]) {
				return NormalizeDate(m[1])
			}
		}
	}
	// No labelled date; accept any date-looking token that validates.
	for _, re := range dobBareRes {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if isValidDate(m[1]) {
				return NormalizeDate(m[1])
			}
		}
	}
	return ""
}

func splitDate(s string) (day, month, year int, ok bool) {
	s = strings.NewReplacer("-", "/", ".", "/").Replace(s)
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}
	day, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0, false
	}
	if year < 100 {
		year = ExpandTwoDigitYear(year)
	}
	return day, month, year, true
}

func isValidDate(s string) bool {
	day, month, year, ok := splitDate(s)
	if !ok {
		return false
	}
	return day >= 1 && day <= 31 &&
		month >= 1 && month <= 12 &&
		year >= 1900 && year <= time.Now().Year()
}

// ExpandTwoDigitYear applies the pivot rule for 2-digit years: 50-99 are
// 1900s, 00-49 are 2000s.
func ExpandTwoDigitYear(year int) int {
	if year >= 50 {
		return 1900 + year
	}
	return 2000 + year
}

// NormalizeDate renders a date-looking string as zero-padded DD/MM/YYYY,
// expanding 2-digit years. Inputs that do not split into three parts are
// returned unchanged.
func NormalizeDate(s string) string {
	day, month, year, ok := splitDate(s)
	if !ok {
		return s
	}
	return fmt.Sprintf("%02d/%02d/%04d", day, month, year)
}

// ---------------- Gender ----------------

var (
	maleRe        = regexp.MustCompile(`(?i)\bmale\b`)
	femaleRe      = regexp.MustCompile(`(?i)\bfemale\b`)
	maleTokenRe   = regexp.MustCompile(`(?m)(?:^|[\s:/])M(?:[\s:/]|$)`)
	femaleTokenRe = regexp.MustCompile(`(?m)(?:^|[\s:/])F(?:[\s:/]|$)`)
)

func extractGender(doc dto.RecognizedDocument) string {
	if g := genderFromText(doc.FullText); g != "" {
		return g
	}
	for _, w := range doc.Words {
		if g := genderFromToken(w.Text); g != "" {
			return g
		}
	}
	return ""
}

func genderFromText(text string) string {
	switch {
	case maleRe.MatchString(text) || strings.Contains(text, "पुरुष"):
		return "Male"
	case femaleRe.MatchString(text) || strings.Contains(text, "महिला"):
		return "Female"
	case maleTokenRe.MatchString(text):
		return "Male"
	case femaleTokenRe.MatchString(text):
		return "Female"
	}
	return ""
}

func genderFromToken(token string) string {
	token = strings.TrimSpace(token)
	// Single-letter markers must match case-sensitively; a stray lowercase
	// "m" or "f" in OCR noise is not a gender.
	switch token {
	case "M":
		return "Male"
	case "F":
		return "Female"
	}
	switch strings.ToLower(token) {
	case "male", "पुरुष":
		return "Male"
	case "female", "महिला":
		return "Female"
	}
	return ""
}

// ---------------- Identification number ----------------

var idNumberRe = regexp.MustCompile(`\b(\d{4})\s?(\d{4})\s?(\d{4})\b`)

// degenerateIDs are placeholder numbers that show up on specimen cards and in
// OCR misreads; they are never real identification numbers.
var degenerateIDs = map[string]bool{
	"000000000000": true,
	"111111111111": true,
	"222222222222": true,
	"123456789012": true,
}

func extractIDNumber(text string) string {
	for _, m := range idNumberRe.FindAllStringSubmatch(text, -1) {
		id := m[1] + m[2] + m[3]
		if !degenerateIDs[id] {
			return id
		}
	}
	return ""
}

// ---------------- Address ----------------

var (
	addressRe     = regexp.MustCompile(`(?is)(?:address|पता)\s*[:\-]?\s*(.+?)(?:\n\s*\n|\b\d{6}\b|$)`)
	pinPrecededRe = regexp.MustCompile(`(?s)^(.*?)\b\d{6}\b`)
)

const (
	minAddressLen  = 10
	maxTrailingLns = 3
)

func extractAddress(text string) string {
	if m := addressRe.FindStringSubmatch(text); len(m) > 1 {
		if addr := flattenAddress(m[1]); addr != "" {
			return addr
		}
	}

	// No label: take the last lines of the block preceding a PIN code.
	m := pinPrecededRe.FindStringSubmatch(text)
	if len(m) < 2 {
		return ""
	}
	var lines []string
	for _, l := range strings.Split(m[1], "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) > maxTrailingLns {
		lines = lines[len(lines)-maxTrailingLns:]
	}
	addr := flattenAddress(strings.Join(lines, " "))
	if len(addr) > minAddressLen {
		return addr
	}
	return ""
}

// flattenAddress joins address lines into a single line; extracted values
// must never contain a line break.
func flattenAddress(raw string) string {
	raw = strings.ReplaceAll(raw, "\n", " ")
	raw = spaceRe.ReplaceAllString(raw, " ")
	return strings.Trim(strings.TrimSpace(raw), ",")
}

// ---------------- helpers ----------------

func nonEmptyLines(doc dto.RecognizedDocument) []string {
	src := doc.Lines
	if len(src) == 0 {
		src = strings.Split(doc.FullText, "\n")
	}
	lines := make([]string, 0, len(src))
	for _, l := range src {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
