package layout

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Ellipsis 追加在被截断文本的末尾。
const Ellipsis = "…"

// 截断时需要保留的收尾引号。
const (
	QuoteStraight   = '"'
	QuoteCurlyClose = '”'
)

type cascadeState int

const (
	statePlacing cascadeState = iota
	stateEllipsizing
	stateDone
)

type placement struct {
	slot int
	text string
}

// Resolve 计算单张标签的 RenderPlan。wrapped[i] 为第 i 行折行后的子行，空行位为 nil。
// 行位按模板顺序处理；溢出只会写入后面的空行位，每个空行位最多被一次溢出写入。
func Resolve(cfg Config, tmpl Template, wrapped [][]string) (RenderPlan, error) {
	if len(wrapped) != len(tmpl) {
		return nil, fmt.Errorf("折行结果有 %d 行，模板有 %d 行", len(wrapped), len(tmpl))
	}
	plan := make(RenderPlan, len(tmpl))
	claimed := make([]bool, len(tmpl))

	for i, spec := range tmpl {
		if spec.Blank() {
			continue
		}
		sub := wrapped[i]
		if len(sub) == 0 {
			sub = []string{""}
		}
		style := SlotText{
			Font:       spec.Font(cfg.FontFace),
			Size:       cfg.FontSize(spec),
			Underline:  spec.Style.Has(StyleUnderline),
			RightAlign: spec.Style.Has(StyleRight),
		}
		places := cascade(tmpl, i, sub, cfg.OverflowIntoSpaces, cfg.TrailingEllipsis)
		if err := commit(plan, claimed, i, places, style); err != nil {
			return nil, err
		}
	}
	return plan, nil
}

// commit 把一行的放置结果写入 plan。行位一旦被占用就不能再写；
// 冲突时返回 ErrSlotCollision，plan 中已有的文本保持不变。
func commit(plan RenderPlan, claimed []bool, line int, places []placement, style SlotText) error {
	for _, p := range places {
		if claimed[p.slot] {
			return fmt.Errorf("%w: 第 %d 行的溢出到达第 %d 行", ErrSlotCollision, line+1, p.slot+1)
		}
	}
	for _, p := range places {
		claimed[p.slot] = true
		if p.text == "" {
			continue
		}
		entry := style
		entry.Text = p.text
		plan[p.slot] = &entry
	}
	return nil
}

// cascade 决定一行的子行分别落在哪些行位。放置结果在返回前全部确定，
// 因此不会留下被省略号取代的残余片段。
func cascade(tmpl Template, line int, sub []string, overflow, ellipsis bool) []placement {
	out := []placement{{slot: line, text: sub[0]}}
	state := statePlacing
	k := 1
	for state != stateDone {
		switch state {
		case statePlacing:
			if k >= len(sub) {
				state = stateDone
				continue
			}
			target := line + k
			if target >= len(tmpl) || !tmpl[target].Blank() || !overflow {
				state = stateEllipsizing
				continue
			}
			out = append(out, placement{slot: target, text: sub[k]})
			k++
		case stateEllipsizing:
			if ellipsis {
				last := &out[len(out)-1]
				last.text = ellipsize(last.text, sub[len(sub)-1])
			}
			state = stateDone
		}
	}
	return out
}

// ellipsize 在 text 后追加省略号；若原文以直引号或右弯引号结尾，再补上同一个引号。
func ellipsize(text, lastSubLine string) string {
	text += Ellipsis
	tail := strings.TrimRightFunc(lastSubLine, unicode.IsSpace)
	if r, _ := utf8.DecodeLastRuneInString(tail); r == QuoteStraight || r == QuoteCurlyClose {
		text += string(r)
	}
	return text
}
