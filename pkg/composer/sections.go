package composer

import "fmt"

// SectionKind identifies one of the four fixed sections of a post.
type SectionKind int

const (
	SectionIntro SectionKind = iota
	SectionProblem
	SectionInfo
	SectionWrapUp
)

// fill carries the already-resolved substitutions for one section.
type fill struct {
	title      string
	keywords   string
	highlights string
	painPoints string
	wishes     string
	toneHint   string
	tone       string
}

type sectionTemplate struct {
	label      string
	subheading func(fill) string
	paragraph  func(fill) string
}

// sectionTable is indexed by SectionKind; its order is the order of the post.
var sectionTable = [...]sectionTemplate{
	SectionIntro: {
		label: "서론",
		subheading: func(f fill) string {
			return fmt.Sprintf("%s를 살펴보기 위한 첫걸음", f.title)
		},
		paragraph: func(f fill) string {
			return fmt.Sprintf("읽기 쉬운 흐름으로 시작합니다. %s를 자연스럽게 녹여 "+
				"주제를 소개하고, 독자가 궁금해할 질문을 던집니다.", f.keywords)
		},
	},
	SectionProblem: {
		label: "문제 제기",
		subheading: func(f fill) string {
			return fmt.Sprintf("%s 속에서 드러난 고민", f.toneHint)
		},
		paragraph: func(f fill) string {
			return fmt.Sprintf("댓글에서 특히 언급된 '%s'를 토대로 문제를 정리합니다. "+
				"%s를 과도하지 않게 배치해 공감대를 형성합니다.", f.painPoints, f.keywords)
		},
	},
	SectionInfo: {
		label: "정보 제공",
		subheading: func(fill) string {
			return "핵심 정보와 적용 팁"
		},
		paragraph: func(f fill) string {
			return fmt.Sprintf("실제 독자가 강조한 '%s'와 바라는 '%s'를 중심으로 "+
				"정보와 사례를 제시합니다. %s는 활용 팁과 함께 배치해 "+
				"검색 가독성을 높입니다.", f.highlights, f.wishes, f.keywords)
		},
	},
	SectionWrapUp: {
		label: "정리",
		subheading: func(fill) string {
			return "정리하며 살펴볼 핵심 포인트"
		},
		paragraph: func(f fill) string {
			return fmt.Sprintf("앞서 다룬 내용을 간결하게 요약하며 %s를 다시 한 번 짚습니다. "+
				"독자가 바로 적용할 수 있는 다음 행동을 안내하고 톤을 '%s'으로 유지합니다.", f.keywords, f.tone)
		},
	},
}

// Sections returns every section kind in post order.
func Sections() []SectionKind {
	kinds := make([]SectionKind, len(sectionTable))
	for i := range sectionTable {
		kinds[i] = SectionKind(i)
	}
	return kinds
}

// Label returns the heading text of the section.
func (k SectionKind) Label() string {
	if k < 0 || int(k) >= len(sectionTable) {
		return ""
	}
	return sectionTable[k].label
}

func (k SectionKind) String() string {
	switch k {
	case SectionIntro:
		return "intro"
	case SectionProblem:
		return "problem"
	case SectionInfo:
		return "info"
	case SectionWrapUp:
		return "wrap-up"
	default:
		return fmt.Sprintf("SectionKind(%d)", int(k))
	}
}
