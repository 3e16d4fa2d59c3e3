package ai

// ExtractPrompt is the system prompt for knowledge graph extraction from a
// single text chunk. The two %s verbs take the comma-joined entity type list
// twice (once in the type section, once in the output rules).
const ExtractPrompt = `
# Task Context
You are a highly intelligent assistant specialized in materials science, chemistry, and semiconductor manufacturing. Your primary function is to analyze technical documents and extract a detailed knowledge graph.

# Detailed Task Description & Rules
- From the text provided, identify all relevant entities and the relationships that connect them.
- Entity types: %s
- Relationship types: use clear, uppercase verb phrases that describe the connection (e.g. "USED_IN", "DEVELOPED_BY", "IMPACTS", "MEASURES").

# Output Formatting
1. Your entire output MUST be a single, valid JSON object.
2. The JSON object must have two top-level keys: "nodes" and "relationships".
3. The value for "nodes" must be a JSON array of objects, each with an "id" (the entity name) and a "type" (one of: %s).
4. The value for "relationships" must be a JSON array of objects, each with a "source" (source node id), "target" (target node id), and "type".
`

// InsightPrompt asks for a one-sentence rationale for a discovered graph
// path. Verbs: path string, document context prefix.
const InsightPrompt = `You are a scientific research analyst. The following path was automatically discovered in a knowledge graph. In a single, concise sentence, explain why this relationship might be scientifically interesting or important.

PATH: %s

DOCUMENT CONTEXT (for reference):
%s

CONCISE EXPLANATION:`

// SynthesisPrompt combines the three retrieval contexts into one cited
// answer. Verbs: vector context, graph context, web context, user question.
const SynthesisPrompt = `
# Task Context
You are an advanced research agent. Answer the user's question by synthesizing the provided contexts.

# Background Data
SOURCES:
1. Internal Docs (vector index): technical manuals and document content.
2. Knowledge Graph (graph database): structured relationships and hierarchies.
3. Live Web: public news and recent updates.

# Detailed Task Description & Rules
- You MUST cite your sources using the tags provided (e.g. [Doc-1], [Graph-1], [Web-1]).
- Prioritize Internal Docs and Graph for technical specs.
- Use Web for news or broader context.
- If sources conflict, prioritize the Graph.

--- INTERNAL DOCS ---
%s

--- KNOWLEDGE GRAPH ---
%s

--- WEB SEARCH ---
%s

--- USER QUESTION ---
%s

ANSWER:`

// CypherPrompt asks the model to translate a natural-language request into
// a single read-only Cypher query. Verb: the request text.
const CypherPrompt = `You are a Cypher query generator. Given a short natural language request, output ONLY a single Cypher query (no explanation).
Be conservative: do not output CREATE/DELETE/SET/MERGE/REMOVE/DROP. Only MATCH/RETURN/WHERE/LIMIT/ORDER BY are allowed.
Request: %s
Cypher:`

// ExperimentPrompt asks the model to design a follow-up experiment for a
// discovered causal path. Verbs: path string, grounding context.
const ExperimentPrompt = `
# Task Context
You are a senior research scientist designing a follow-up experiment for a causal chain that was automatically discovered in a technical document.

# Background Data
PATH UNDER INVESTIGATION: %s

GROUNDING CONTEXT:
%s

# Detailed Task Description & Rules
- Propose one concrete experiment that could confirm or refute the causal chain above.
- Stay within what the grounding context makes plausible; do not invent equipment or materials it never mentions.

# Output Formatting
Return a single JSON object with this structure:
{
  "hypothesis": "<one sentence>",
  "methodology": ["<step 1>", "<step 2>", "..."],
  "variables": {"independent": "<name>", "dependent": "<name>", "controlled": ["<name>", "..."]},
  "expected_outcome": "<one sentence>"
}
`
