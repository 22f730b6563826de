package domain

// AnswerRecord pairs a generated answer with the citations that ground
// it. Citation order mirrors the chunk order returned by retrieval, not
// similarity or filename. This is the unit handed to persistence.
type AnswerRecord struct {
	Content   string      `json:"content"`
	Citations []*Citation `json:"citations"`
}

// NewAnswerRecord builds the persisted-answer shape. Content and
// citations are attached verbatim; the explicit constructor exists so
// the pairing is a testable unit rather than a side effect of storage
// code.
func NewAnswerRecord(content string, citations []*Citation) *AnswerRecord {
	if citations == nil {
		citations = []*Citation{}
	}
	return &AnswerRecord{
		Content:   content,
		Citations: citations,
	}
}
