// Package costsheet is the formula engine behind import cost sheets: a sparse
// grid of cells where each cell holds either a plain value or a formula
// referencing other cells and ranges.
//
// The package provides:
//   - Cell Addressing: bijective base-26 column letters, cell keys such as
//     "AB12", single references and rectangular ranges.
//   - Grid Model: a sparse key to cell mapping with a declared extent. Absent
//     cells are empty (0 in numeric contexts).
//   - Expression Evaluator: a restricted arithmetic grammar (+ - * /,
//     parentheses, cell references, ranges) with a registry of aggregate
//     functions (SUM, AVERAGE, MIN, MAX, COUNT, ABS, ROUND, IF).
//   - Recalculation: a two-pass strategy settling one level of
//     formula-to-formula dependency, and an ordered strategy evaluating formulas
//     in dependency order with cycle detection.
//   - Serialization: a flat list of non-empty cells, its JSONL encoding and a
//     JSON read view that can be queried with JSONPath.
//   - Presentation: locale-aware number and currency formatting.
//
// Evaluation failures never escape a cell: the cell displays "#ERROR" and
// carries a message, and every other cell computes normally. The package
// holds no shared mutable state; callers serialize edits to a grid.
package costsheet
