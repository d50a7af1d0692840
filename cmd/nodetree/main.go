/*
Command nodetree inspects flattened page documents.

A document file is a JSON array of nodes, each carrying a "nodeType"
discriminator, as written by a persistence layer. nodetree loads it into a
document, which validates its structure, and prints or checks it.

	nodetree dump site.json
	nodetree dot --tier desktop site.json > site.dot
	nodetree slugs site.json
	nodetree check site.json

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package main

func main() {
	Execute()
}
