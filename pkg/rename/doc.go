/*
Package rename implements the batch rename pipeline: collect, plan, execute.

	+-----------+      +-----------+      +-----------+
	|  Collect  | ---> | BuildPlan | ---> |  Execute  |
	| (files)   |      | (pure)    |      | (dry/apply)|
	+-----------+      +-----------+      +-----------+

🎯 Purpose:
- Enumerates candidate files in a deterministic order
- Composes name transformations in a fixed, documented order
- Detects target collisions before anything is mutated
- Applies renames best-effort with per-entry failure isolation

🔄 Flow:
1. Collect lists files under a root (lexicographic per directory level)
2. BuildPlan maps every candidate to exactly one proposed path
3. Execute either prints the plan (dry-run, the default) or applies it

📝 Design Philosophy:
Planning is pure computation: the same candidates, rules and timestamp
always produce the same plan, which is what makes a dry-run trustworthy —
the plan shown is the plan applied. All filesystem access is confined to
Collect and Execute.
*/
package rename
