// Package ollama provides a sentence embedder backed by a local Ollama
// server through langchaingo. The default model, all-minilm, is the
// all-MiniLM-L6-v2 sentence transformer.
package ollama
